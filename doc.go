// Package joystick is an on-screen thumbstick widget for [Ebitengine].
//
// A [Joystick] draws a base disc and a smaller thumb disc. Touching the base
// disc moves the thumb toward the touch point, clamped so the thumb never
// leaves the disc, and reports a direction vector whose components lie in
// [-1, 1]. Releasing recenters the thumb and reports (0, 0).
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	stick := joystick.New("move", joystick.Config{})
//	stick.SetBounds(joystick.Rect{X: 40, Y: 280, Width: 160, Height: 160})
//	stick.OnMove(func(e joystick.MoveEvent) {
//		player.VX, player.VY = e.X*speed, e.Y*speed
//	})
//
//	host := joystick.NewHost()
//	if err := host.Attach(stick); err != nil {
//		log.Fatal(err)
//	}
//	joystick.Run(host, joystick.RunConfig{Title: "Demo", Width: 480, Height: 480})
//
// For full control, keep your own [ebiten.Game] and call [Host.Update],
// [Host.Draw] and [Host.Layout] from it, or drive a Joystick directly with
// [Joystick.HandleTouch] and [Joystick.Draw].
//
// # Hold repeat
//
// A held but unmoving thumb produces no new touch events, yet a game
// driving continuous movement wants a steady stream. Each Joystick owns a
// hold repeater that re-emits the current direction every
// [Config.RepeatInterval] (16ms by default) while a touch is held.
// Repeats carry [MoveEvent.Repeat] = true and never change the direction.
//
// The repeater is started by [Host.Attach] (or [Joystick.Start] /
// [Joystick.Run]) and stopped deterministically by [Host.Detach],
// [Host.Close], [Joystick.Stop] or [Joystick.Close]. Under a Host, repeats
// are queued and delivered from Update, so handlers only ever run on the
// game goroutine.
//
// # ECS
//
// The ECS bridge lives in the nested module
// github.com/phanxgames/joystick/ecs, which publishes every MoveEvent to a
// [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package joystick
