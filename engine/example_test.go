package engine_test

import (
	"fmt"
	"strconv"

	"github.com/plus3/warpcore/engine"
)

func ExampleEngine_Tick() {
	e := engine.New(nil)
	scene := e.RegisterScene("main")
	scene.SetInitialData("Ticks", "0")

	ticks := 0
	scene.RegisterGameObject(engine.NewBuilder().Behavior(engine.TickFunc(func(obj *engine.EntityView, ctx *engine.Context) {
		ticks++
		_ = ctx.SetData("Ticks", strconv.Itoa(ticks))
	})))

	if err := e.SetCurrentScene("main"); err != nil {
		fmt.Println(err)
		return
	}
	for i := 0; i < 3; i++ {
		e.Tick(frame)
	}

	v, _ := e.ActiveScene().Data("Ticks")
	fmt.Println(v)
	// Output: 3
}
