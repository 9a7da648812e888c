package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller is the source of randomness for encounters, treasure and stat rolls.
// Inject a mock roller in tests to make outcomes deterministic.
type Roller interface {
	// Roll rolls count dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// Between rolls a uniform integer in the inclusive range [low, high]
func Between(r Roller, low, high int) (int, error) {
	if high < low {
		low, high = high, low
	}
	result, err := r.Roll(1, high-low+1, low-1)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// Pick rolls a uniform index in [0, n)
func Pick(r Roller, n int) (int, error) {
	return Between(r, 0, n-1)
}
