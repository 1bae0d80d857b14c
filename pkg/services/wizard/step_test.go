package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep_Navigation(t *testing.T) {
	for s := FirstStep; s <= LastStep; s++ {
		assert.Equal(t, min(s+1, LastStep), s.Next(), "next from %d", s)
		assert.Equal(t, max(s-1, FirstStep), s.Previous(), "previous from %d", s)
	}
}

func TestStep_Boundaries(t *testing.T) {
	assert.Equal(t, StepReview, StepReview.Next())
	assert.Equal(t, StepDetails, StepDetails.Previous())
	assert.Equal(t, StepDetails, Step(0).Next().Previous())
	assert.Equal(t, "kpis", StepKPIs.String())
}
