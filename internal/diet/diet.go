// Package diet computes daily calorie targets from a user profile.
// Both strategies are closed-form BMR formulas with a shared activity
// multiplier; they hold no state.
package diet

import (
	"yada/internal/errors"
)

// Gender selects the formula branch used by the BMR strategies.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ActivityLevel scales BMR into a daily calorie target.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtraActive      ActivityLevel = "extra_active"
)

// activityMultipliers maps each level to its standard multiplier.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtraActive:      1.9,
}

// Profile is the user data the target formulas need.
type Profile struct {
	Gender   Gender
	WeightKg float64
	HeightCm float64
	Age      int
	Activity ActivityLevel
}

// Validate checks the profile fields the formulas depend on.
func (p Profile) Validate() error {
	if p.Gender != Male && p.Gender != Female {
		return errors.NewInvalidRequest("gender must be male or female")
	}
	if p.WeightKg <= 0 {
		return errors.NewInvalidRequest("weight must be positive")
	}
	if p.HeightCm <= 0 {
		return errors.NewInvalidRequest("height must be positive")
	}
	if p.Age <= 0 {
		return errors.NewInvalidRequest("age must be positive")
	}
	if _, ok := activityMultipliers[p.Activity]; !ok {
		return errors.NewInvalidRequest("unknown activity level: " + string(p.Activity))
	}
	return nil
}

// Strategy is a daily calorie target calculation.
type Strategy interface {
	// DailyTarget returns the recommended daily calorie intake.
	DailyTarget(p Profile) float64

	// Name returns the human-readable strategy name.
	Name() string
}

// HarrisBenedict implements the Harris-Benedict BMR equation.
type HarrisBenedict struct{}

func (HarrisBenedict) DailyTarget(p Profile) float64 {
	var bmr float64
	if p.Gender == Male {
		bmr = 88.362 + 13.397*p.WeightKg + 4.799*p.HeightCm - 5.677*float64(p.Age)
	} else {
		bmr = 447.593 + 9.247*p.WeightKg + 3.098*p.HeightCm - 4.330*float64(p.Age)
	}
	return bmr * activityMultipliers[p.Activity]
}

func (HarrisBenedict) Name() string { return "Harris-Benedict Equation" }

// MifflinStJeor implements the Mifflin-St Jeor BMR equation.
type MifflinStJeor struct{}

func (MifflinStJeor) DailyTarget(p Profile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == Male {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr * activityMultipliers[p.Activity]
}

func (MifflinStJeor) Name() string { return "Mifflin-St Jeor Equation" }

// StrategyByName looks up a strategy by its short CLI name.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "harris-benedict":
		return HarrisBenedict{}, nil
	case "mifflin-st-jeor", "":
		return MifflinStJeor{}, nil
	default:
		return nil, errors.NewInvalidRequest("unknown strategy: " + name + " (use harris-benedict or mifflin-st-jeor)")
	}
}

// ParseGender validates a gender string.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case Male, Female:
		return Gender(s), nil
	default:
		return "", errors.NewInvalidRequest("gender must be male or female")
	}
}

// ParseActivityLevel validates an activity level string.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	if _, ok := activityMultipliers[ActivityLevel(s)]; !ok {
		return "", errors.NewInvalidRequest("unknown activity level: " + s)
	}
	return ActivityLevel(s), nil
}
