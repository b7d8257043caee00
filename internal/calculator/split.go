package calculator

// EqualShare divides amount evenly among participants people.
// It reports false when there is nobody to split with, in which case the
// expense contributes nothing to any balance.
func EqualShare(amount float64, participants int) (float64, bool) {
	if participants <= 0 {
		return 0, false
	}
	return amount / float64(participants), true
}
