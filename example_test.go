package pace

import (
	"fmt"
	"time"
)

func ExampleCell() {
	count := NewCell(0)
	fmt.Println(count.Read())

	count.Write(10)
	fmt.Println(count.Read())

	// Output:
	// 0
	// 10
}

func ExampleComputed() {
	count := NewCell(1)
	double := NewComputed(func() int {
		fmt.Println("doubling")
		return count.Read() * 2
	})

	fmt.Println(double.Read())
	count.Write(10)
	fmt.Println(double.Read())

	// Output:
	// doubling
	// 2
	// doubling
	// 20
}

func ExampleThrottler() {
	th := NewThrottler(func(s string) { fmt.Println(s) }, time.Hour)

	th.Call("first")
	th.Call("dropped")

	// Output:
	// first
}

func ExampleNewThrottledValue() {
	query := NewCell("")
	throttled := NewThrottledValue(query, WithLimit(time.Hour))
	defer throttled.Dispose()

	Watch(throttled, func(q string) { fmt.Println("search:", q) })

	query.Write("g")
	query.Write("go")

	fmt.Println(throttled.Read())

	// Output:
	// search: g
	// g
}
