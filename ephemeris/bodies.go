package ephemeris

import (
	"math"

	"synastry-service/models"
)

// A longitudeFunc returns the raw, unnormalized tropical longitude of a body in
// degrees at t Julian centuries from J2000.
type longitudeFunc func(t float64) float64

var bodyFuncs = map[models.Body]longitudeFunc{
	models.Sun:      sun,
	models.Moon:     moon,
	models.Mercury:  mercury,
	models.Venus:    venus,
	models.Mars:     mars,
	models.Jupiter:  jupiter,
	models.Saturn:   saturn,
	models.Uranus:   uranus,
	models.Neptune:  neptune,
	models.Pluto:    pluto,
	models.TrueNode: trueNode,
	models.Chiron:   chiron,
}

func sin(deg float64) float64 { return math.Sin(ToRadians(deg)) }

func sun(t float64) float64 {
	t2 := t * t
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t2
	m := 357.52911 + 35999.05029*t - 0.0001537*t2
	c := (1.914602-0.004817*t-0.000014*t2)*sin(m) +
		(0.019993-0.000101*t)*sin(2*m) +
		0.000289*sin(3*m)
	return l0 + c
}

func moon(t float64) float64 {
	t2, t3, t4 := t*t, t*t*t, t*t*t*t
	l := 218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841 - t4/65194000
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868 - t4/113065000
	m := 357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000
	mp := 134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699 - t4/14712000
	f := 93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000 + t4/863310000

	return l +
		6.288774*sin(mp) +
		1.274027*sin(2*d-mp) +
		0.658314*sin(2*d) +
		0.213618*sin(2*mp) -
		0.185116*sin(m) -
		0.114332*sin(2*f) +
		0.058793*sin(2*d-2*mp) +
		0.057066*sin(2*d-m-mp) +
		0.053322*sin(2*d+mp) +
		0.045758*sin(2*d-m)
}

// keplerLongitude solves the orbit for mean longitude l, eccentricity e and
// longitude of perihelion w, all polynomial in t.
func keplerLongitude(l, e, w float64) float64 {
	m := ToRadians(l - w)
	ea := SolveKepler(m, e, DefaultKeplerTolerance, DefaultKeplerIterations)
	return ToDegrees(TrueAnomaly(ea, e)) + w
}

func mercury(t float64) float64 {
	t2, t3 := t*t, t*t*t
	return keplerLongitude(
		252.250906+149472.6746358*t-0.00000535*t2+0.000000002*t3,
		0.20563175+0.000020406*t-0.0000000284*t2-0.00000000017*t3,
		29.124279+1.0144607*t-0.00000536*t2-0.000000112*t3,
	)
}

func venus(t float64) float64 {
	t2, t3 := t*t, t*t*t
	return keplerLongitude(
		181.979801+58517.8156760*t+0.00000165*t2-0.000000002*t3,
		0.00677188-0.000047766*t+0.0000000975*t2+0.00000000044*t3,
		54.891084+1.3821169*t+0.00031014*t2+0.000000015*t3,
	)
}

func mars(t float64) float64 {
	t2, t3 := t*t, t*t*t
	return keplerLongitude(
		355.433275+19140.2993313*t+0.00000261*t2-0.000000003*t3,
		0.09340062+0.000090483*t-0.0000000806*t2-0.00000000035*t3,
		286.502130+0.8440440*t-0.00007617*t2+0.000000091*t3,
	)
}

// equationOfCenter is the three-harmonic correction used for the slow bodies.
type equationOfCenter struct{ c1, c2, c3 float64 }

func (q equationOfCenter) apply(l, m float64) float64 {
	return l + q.c1*sin(m) + q.c2*sin(2*m) + q.c3*sin(3*m)
}

func jupiter(t float64) float64 {
	t2, t3 := t*t, t*t*t
	l := 34.351484 + 3034.9056746*t - 0.00008501*t2 + 0.000000004*t3
	m := l - (14.331309 + 1.6021302*t + 0.00017685*t2 + 0.000000027*t3)
	return equationOfCenter{5.555, 0.168, 0.020}.apply(l, m)
}

func saturn(t float64) float64 {
	t2, t3 := t*t, t*t*t
	l := 50.077471 + 1222.1137943*t + 0.00021004*t2 - 0.000000019*t3
	m := l - (92.598972 + 0.5733566*t + 0.00025393*t2 + 0.000000004*t3)
	return equationOfCenter{5.629, 0.206, 0.024}.apply(l, m)
}

func uranus(t float64) float64 {
	t2, t3 := t*t, t*t*t
	l := 314.055005 + 428.4669983*t - 0.00000486*t2 + 0.000000006*t3
	m := l - (244.197470 + 0.1945078*t + 0.00016852*t2 + 0.000000004*t3)
	return equationOfCenter{5.481, 0.119, 0.014}.apply(l, m)
}

func neptune(t float64) float64 {
	t2, t3 := t*t, t*t*t
	l := 304.348665 + 218.4862002*t + 0.00000059*t2 - 0.000000002*t3
	m := l - (84.457994 + 0.6107942*t + 0.00000520*t2 - 0.000000002*t3)
	return equationOfCenter{1.073, 0.024, 0.003}.apply(l, m)
}

func pluto(t float64) float64 {
	t2 := t * t
	l := 238.958116 + 145.2078201*t - 0.00000006*t2
	m := l - (15.170 + 0.4113288*t + 0.00001931*t2)
	return equationOfCenter{28.3150, 4.3408, 0.9214}.apply(l, m)
}

// trueNode is the mean ascending node of the lunar orbit.
func trueNode(t float64) float64 {
	t2, t3, t4 := t*t, t*t*t, t*t*t*t
	return 125.0445479 - 1934.1362891*t + 0.0020754*t2 + t3/467441 - t4/60616000
}

func chiron(t float64) float64 {
	l := 207.224 + 1364.681*t
	m := l - (339.164 + 1364.681*t)
	return l + 1.5*sin(m) + 0.1*sin(2*m)
}
