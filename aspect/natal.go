package aspect

import "synastry-service/models"

// Natal returns the aspects between every unordered pair of the major bodies
// in c, in body order. Pairs involving an absent body and pairs with no
// aspect are left out.
func Natal(c models.Chart) []models.BodyAspect {
	var out []models.BodyAspect
	bodies := models.MajorBodies
	for i := 0; i < len(bodies); i++ {
		p1, ok := c.Position(bodies[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			p2, ok := c.Position(bodies[j])
			if !ok {
				continue
			}
			if a := Classify(p1, p2); !a.IsNone() {
				out = append(out, models.BodyAspect{First: bodies[i], Second: bodies[j], Aspect: a})
			}
		}
	}
	return out
}
