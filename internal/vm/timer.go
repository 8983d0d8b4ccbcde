package vm

import "time"

// DefaultTimerInterval is the 60 Hz period of the delay and sound timers.
const DefaultTimerInterval = time.Second / 60

// TickTimers decrements the delay and sound timers if the timer interval
// elapsed since the previous decrement. The first call is always due.
// Calling it again with the same time sample has no effect.
// It returns whether the timers were due.
func (vm *VM) TickTimers(now time.Time) bool {
	if !vm.lastTimerTick.IsZero() && now.Sub(vm.lastTimerTick) < vm.timerInterval {
		return false
	}
	vm.lastTimerTick = now

	if vm.dt > 0 {
		vm.dt--
	}
	if vm.st > 0 {
		vm.st--
	}
	return true
}

// TimerInterval returns the minimum time between two timer decrements.
func (vm *VM) TimerInterval() time.Duration {
	return vm.timerInterval
}
