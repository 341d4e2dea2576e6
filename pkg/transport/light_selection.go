package transport

import "github.com/df07/go-light-transport/pkg/core"

// ChooseLight picks a light for next-event estimation at p, proportionally
// to each light's approximate radiance there. Lights without an estimate
// get the average weight of the others. The returned weight is the inverse
// selection probability.
func (t *Tracer) ChooseLight(sampler core.Sampler, p core.Vec3) (Light, float64, bool) {
	lights := t.scene.Lights()
	if len(lights) == 0 {
		return nil, 0, false
	}
	if len(lights) == 1 {
		return lights[0], 1.0, true
	}

	if len(t.lightWeights) != len(lights) {
		t.lightWeights = make([]float64, len(lights))
		t.lightKnown = make([]bool, len(lights))
	}

	total := 0.0
	known := 0
	for i, light := range lights {
		w, ok := light.ApproximateRadiance(t.worker, p)
		ok = ok && w >= 0
		t.lightKnown[i] = ok
		if ok {
			t.lightWeights[i] = w
			total += w
			known++
		}
	}

	switch {
	case known == 0:
		for i := range t.lightWeights {
			t.lightWeights[i] = 1.0
		}
		total = float64(len(lights))
	case known < len(lights):
		fill := total / float64(known)
		if total == 0 {
			fill = 1.0 / float64(known)
		}
		for i := range t.lightWeights {
			if !t.lightKnown[i] {
				t.lightWeights[i] = fill
				total += fill
			}
		}
	}

	if total <= 0 {
		return nil, 0, false
	}

	target := sampler.Get1D() * total
	last := -1
	for i, w := range t.lightWeights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return lights[i], total / w, true
		}
		target -= w
	}

	// rounding can leave target just past the final bucket
	return lights[last], total / t.lightWeights[last], true
}

// ChooseLightAdjoint picks a light from the fixed, position-independent
// distribution. The returned value is the selection probability.
func (t *Tracer) ChooseLightAdjoint(sampler core.Sampler) (Light, float64, bool) {
	lights := t.scene.Lights()
	if len(lights) == 0 || t.lightDist == nil || t.lightDist.Len() != len(lights) {
		return nil, 0, false
	}

	idx := t.lightDist.Warp(sampler.Get1D())
	if idx < 0 {
		return nil, 0, false
	}
	return lights[idx], t.lightDist.Pdf(idx), true
}

// AdjointLightPdf returns the probability of ChooseLightAdjoint picking light
func (t *Tracer) AdjointLightPdf(light Light) float64 {
	if t.lightDist == nil {
		return 0
	}
	for i, l := range t.scene.Lights() {
		if l == light && i < t.lightDist.Len() {
			return t.lightDist.Pdf(i)
		}
	}
	return 0
}
