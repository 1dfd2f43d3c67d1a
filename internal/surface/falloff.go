package surface

// Stop is one colour stop of a radial gradient: at distance D (a fraction
// of the radius) the opacity is A times the paint's.
type Stop struct{ D, A float64 }

var (
	GlowStops = []Stop{{0, 1}, {0.5, 0.5}, {1, 0}}
	PuffStops = []Stop{{0, 1}, {0.7, 0.6}, {1, 0}}
)

// Falloff interpolates stops at d, the distance from the centre as a
// fraction of the radius. Outside the last stop it is zero.
func Falloff(stops []Stop, d float64) float64 {
	if len(stops) == 0 || d < 0 {
		return 0
	}
	if d <= stops[0].D {
		return stops[0].A
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if d <= hi.D {
			t := (d - lo.D) / (hi.D - lo.D)
			return lo.A + t*(hi.A-lo.A)
		}
	}
	return 0
}
