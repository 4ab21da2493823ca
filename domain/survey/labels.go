package survey

import (
	"fmt"

	"likertlab/domain/core"
)

// LabelMap maps each code on a scale to its display label. Labels are
// ordered ascending: Labels[0] belongs to Scale.Min. The map is supplied
// to renderers per chart; the aggregation layer never computes it.
type LabelMap struct {
	Scale  Scale
	Labels []string
}

// NewLabelMap builds a label map, requiring one label per scale code.
func NewLabelMap(scale Scale, labels []string) (LabelMap, error) {
	if err := scale.Validate(); err != nil {
		return LabelMap{}, err
	}
	if len(labels) != scale.Size() {
		return LabelMap{}, fmt.Errorf("%w: got %d labels for %d codes",
			core.ErrLabelCount, len(labels), scale.Size())
	}
	return LabelMap{Scale: scale, Labels: labels}, nil
}

// AgreementLabels returns the standard five-point agreement label map.
func AgreementLabels() LabelMap {
	return LabelMap{
		Scale: DefaultScale(),
		Labels: []string{
			"Strongly disagree",
			"Disagree",
			"Neither agree nor disagree",
			"Agree",
			"Strongly agree",
		},
	}
}

// Label returns the display label for a code, or its numeric form when
// the code lies outside the scale.
func (m LabelMap) Label(r Rating) string {
	if !m.Scale.Contains(r) {
		return fmt.Sprintf("%d", r)
	}
	return m.Labels[int(r-m.Scale.Min)]
}
