// Package samples holds the example benchmarks shipped with the benchkit
// binary.
package samples

import (
	"fmt"

	"benchkit/internal/benchmark"
)

// sink keeps the busy loop from being optimised away.
var sink int

// DeliveryMan burns CPU in proportion to distance/speed.
type DeliveryMan struct {
	Speed int
}

// DeliverPackage wastes 10000*distance/speed loop iterations.
func (d DeliveryMan) DeliverPackage(distance int) {
	for n := 10000 * distance / d.Speed; n > 0; n-- {
		sink = n
	}
}

// slowDeliveryMan prepares a speed 1 courier in SetUp.
type slowDeliveryMan struct {
	man *DeliveryMan
}

func (f *slowDeliveryMan) SetUp()    { f.man = &DeliveryMan{Speed: 1} }
func (f *slowDeliveryMan) TearDown() { f.man = nil }
func (f *slowDeliveryMan) TestBody() { f.man.DeliverPackage(10) }

// fastDeliveryMan prepares a speed 10 courier and delivers over distance.
type fastDeliveryMan struct {
	distance int
	man      *DeliveryMan
}

func (f *fastDeliveryMan) SetUp()    { f.man = &DeliveryMan{Speed: 10} }
func (f *fastDeliveryMan) TearDown() { f.man = nil }
func (f *fastDeliveryMan) TestBody() { f.man.DeliverPackage(f.distance) }

func registerDeliveryMan(reg *benchmark.Registry) error {
	if _, err := reg.RegisterTest("DeliveryMan", "DeliverPackage", 10, 100, benchmark.Body(func() {
		DeliveryMan{Speed: 1}.DeliverPackage(100)
	}), nil); err != nil {
		return err
	}
	if _, err := reg.RegisterTest("DeliveryMan", "DISABLED_DeliverPackage", 10, 10000, benchmark.Body(func() {
		DeliveryMan{Speed: 1}.DeliverPackage(10000)
	}), nil); err != nil {
		return err
	}

	for _, speed := range []int{1, 5, 10} {
		const distance = 10
		_, err := reg.RegisterParameterized("DeliveryMan", "DeliverPackage", 10, 100,
			benchmark.Body(func() { DeliveryMan{Speed: speed}.DeliverPackage(distance) }),
			"(int speed, int distance)", fmt.Sprintf("(%d, %d)", speed, distance))
		if err != nil {
			return err
		}
	}

	if _, err := reg.RegisterTest("SlowDeliveryManFixture", "DeliverPackage", 10, 100,
		benchmark.FactoryFor[slowDeliveryMan](), nil); err != nil {
		return err
	}

	for _, distance := range []int{1, 10, 100} {
		_, err := reg.RegisterParameterized("FastDeliveryManFixture", "DeliverPackage", 10, 100,
			benchmark.FactoryFunc(func() benchmark.Test { return &fastDeliveryMan{distance: distance} }),
			"(int distance)", fmt.Sprintf("(%d)", distance))
		if err != nil {
			return err
		}
	}
	return nil
}
