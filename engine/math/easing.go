package math

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

type EasingFunc int

const (
	EasingLinear EasingFunc = iota
	EasingStep
	EasingSinusoidalIn
	EasingSinusoidalOut
	EasingSinusoidalInOut
	EasingEaseIn
	EasingEaseOut
	EasingEaseInOut
	EasingExpoIn
	EasingExpoOut
	EasingExpoInOut
	EasingCircularIn
	EasingCircularOut
	EasingCircularInOut
)

var easingNames = map[EasingFunc]string{
	EasingLinear:          "linear",
	EasingStep:            "step",
	EasingSinusoidalIn:    "sinusoidal_in",
	EasingSinusoidalOut:   "sinusoidal_out",
	EasingSinusoidalInOut: "sinusoidal_in_out",
	EasingEaseIn:          "ease_in",
	EasingEaseOut:         "ease_out",
	EasingEaseInOut:       "ease_in_out",
	EasingExpoIn:          "expo_in",
	EasingExpoOut:         "expo_out",
	EasingExpoInOut:       "expo_in_out",
	EasingCircularIn:      "circular_in",
	EasingCircularOut:     "circular_out",
	EasingCircularInOut:   "circular_in_out",
}

func (e EasingFunc) String() string {
	if name, ok := easingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EasingFunc(%d)", int(e))
}

func (e EasingFunc) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EasingFunc) UnmarshalText(text []byte) error {
	fn, err := ParseEasingFunc(string(text))
	if err != nil {
		return err
	}
	*e = fn
	return nil
}

func ParseEasingFunc(name string) (EasingFunc, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for e, s := range easingNames {
		if s == n {
			return e, nil
		}
	}
	return EasingLinear, fmt.Errorf("unknown easing function '%s'", name)
}

// Ease maps alpha through the easing function. Steps only applies to
// EasingStep and blendExp to the EaseIn/Out family.
func Ease(fn EasingFunc, alpha float32, steps int32, blendExp float32) float32 {
	switch fn {
	case EasingStep:
		return InterpStep(alpha, steps)
	case EasingSinusoidalIn:
		return InterpSinIn(alpha)
	case EasingSinusoidalOut:
		return InterpSinOut(alpha)
	case EasingSinusoidalInOut:
		return InterpSinInOut(alpha)
	case EasingEaseIn:
		return InterpEaseIn(alpha, blendExp)
	case EasingEaseOut:
		return InterpEaseOut(alpha, blendExp)
	case EasingEaseInOut:
		return InterpEaseInOut(alpha, blendExp)
	case EasingExpoIn:
		return InterpExpoIn(alpha)
	case EasingExpoOut:
		return InterpExpoOut(alpha)
	case EasingExpoInOut:
		return InterpExpoInOut(alpha)
	case EasingCircularIn:
		return InterpCircularIn(alpha)
	case EasingCircularOut:
		return InterpCircularOut(alpha)
	case EasingCircularInOut:
		return InterpCircularInOut(alpha)
	default:
		return alpha
	}
}

// InterpStep quantizes alpha into steps levels between 0 and 1.
func InterpStep(alpha float32, steps int32) float32 {
	if steps <= 1 || alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 1
	}
	intervals := float32(steps - 1)
	return math32.Floor(alpha*float32(steps)) / intervals
}

func InterpSinIn(alpha float32) float32 {
	return 1 - math32.Cos(alpha*K_HALF_PI)
}

func InterpSinOut(alpha float32) float32 {
	return math32.Sin(alpha * K_HALF_PI)
}

func InterpSinInOut(alpha float32) float32 {
	if alpha < 0.5 {
		return 0.5 * InterpSinIn(alpha*2)
	}
	return 0.5*InterpSinOut(alpha*2-1) + 0.5
}

func InterpEaseIn(alpha, exp float32) float32 {
	return math32.Pow(alpha, exp)
}

func InterpEaseOut(alpha, exp float32) float32 {
	return 1 - math32.Pow(1-alpha, exp)
}

func InterpEaseInOut(alpha, exp float32) float32 {
	if alpha < 0.5 {
		return 0.5 * InterpEaseIn(alpha*2, exp)
	}
	return 0.5*InterpEaseOut(alpha*2-1, exp) + 0.5
}

func InterpExpoIn(alpha float32) float32 {
	if alpha == 0 {
		return 0
	}
	return math32.Pow(2, 10*(alpha-1))
}

func InterpExpoOut(alpha float32) float32 {
	if alpha == 1 {
		return 1
	}
	return 1 - math32.Pow(2, -10*alpha)
}

func InterpExpoInOut(alpha float32) float32 {
	if alpha < 0.5 {
		return 0.5 * InterpExpoIn(alpha*2)
	}
	return 0.5*InterpExpoOut(alpha*2-1) + 0.5
}

func InterpCircularIn(alpha float32) float32 {
	return 1 - math32.Sqrt(1-alpha*alpha)
}

func InterpCircularOut(alpha float32) float32 {
	a := alpha - 1
	return math32.Sqrt(1 - a*a)
}

func InterpCircularInOut(alpha float32) float32 {
	if alpha < 0.5 {
		return 0.5 * InterpCircularIn(alpha*2)
	}
	return 0.5*InterpCircularOut(alpha*2-1) + 0.5
}
