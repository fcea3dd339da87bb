package runtime

// Guard classifies why generated code aborted a transaction.
// Every guard ends in revert(0, 0): the transaction aborts with no output and
// no state change survives.
type Guard int

const (
	GuardNone Guard = iota
	GuardOverflow
	GuardDivisionByZero
	GuardOutOfBounds
	GuardNarrowingCast
	GuardNonPayable
	GuardFailedSend
	GuardFatal
	GuardCallerProtection
	GuardUnknownSelector
)

func (g Guard) String() string {
	switch g {
	case GuardNone:
		return "none"
	case GuardOverflow:
		return "arithmetic overflow"
	case GuardDivisionByZero:
		return "division by zero"
	case GuardOutOfBounds:
		return "out of bounds access"
	case GuardNarrowingCast:
		return "value does not fit cast target"
	case GuardNonPayable:
		return "value sent to non-payable function"
	case GuardFailedSend:
		return "failed send"
	case GuardFatal:
		return "fatal error"
	case GuardCallerProtection:
		return "caller protection failed"
	case GuardUnknownSelector:
		return "no function matches selector"
	}
	return "unknown"
}

// Guard returns the failure a revert inside this helper stands for
func (h Helper) Guard() Guard {
	switch h {
	case Add, Sub, Mul, Power:
		return GuardOverflow
	case Div:
		return GuardDivisionByZero
	case StorageArrayOffset, StorageArrayReadOffset, StorageFixedSizeArrayOffset:
		return GuardOutOfBounds
	case RevertIfGreater:
		return GuardNarrowingCast
	case CheckNoValue:
		return GuardNonPayable
	case Send:
		return GuardFailedSend
	case FatalError:
		return GuardFatal
	}
	return GuardNone
}

// GuardOf attributes a revert to the innermost helper on a call stack.
// frames lists active function names, outermost first.
func GuardOf(frames []string) Guard {
	for i := len(frames) - 1; i >= 0; i-- {
		if h, ok := Lookup(frames[i]); ok {
			if g := h.Guard(); g != GuardNone {
				return g
			}
		}
	}
	return GuardNone
}
