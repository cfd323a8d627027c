package samples

import (
	"time"

	"benchkit/internal/benchmark"
)

func registerSleep(reg *benchmark.Registry) error {
	for _, d := range []time.Duration{time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond} {
		name := "Sleep" + d.String()
		if _, err := reg.RegisterTest("SomeSleep", name, 5, 10, benchmark.Body(func() { time.Sleep(d) }), nil); err != nil {
			return err
		}
	}
	return nil
}
