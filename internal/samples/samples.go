package samples

import "benchkit/internal/benchmark"

// Register adds every sample benchmark to reg.
func Register(reg *benchmark.Registry) error {
	for _, register := range []func(*benchmark.Registry) error{
		registerDeliveryMan,
		registerSleep,
	} {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}
