package fancy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/atlanticdynamic/kgames/internal/fancy"
)

// StylesTestSuite is a test suite for testing styles-related functionality
type StylesTestSuite struct {
	suite.Suite
}

func (s *StylesTestSuite) TestStylesRender() {
	sampleText := "Test Text"
	for _, render := range []func(...string) string{
		fancy.RootStyle.Render,
		fancy.HeaderStyle.Render,
		fancy.InfoStyle.Render,
		fancy.BranchStyle.Render,
		fancy.ComponentStyle.Render,
		fancy.ScriptStyle.Render,
		fancy.ExampleStyle.Render,
		fancy.SourceStyle.Render,
		fancy.WarningStyle.Render,
		fancy.ErrorStyle.Render,
	} {
		s.Contains(render(sampleText), sampleText)
	}
}

func (s *StylesTestSuite) TestTextHelpers() {
	tests := []struct {
		name   string
		render func(string) string
	}{
		{"ScriptText", fancy.ScriptText},
		{"ExampleText", fancy.ExampleText},
		{"SourceText", fancy.SourceText},
		{"ValidText", fancy.ValidText},
		{"WarningText", fancy.WarningText},
		{"ErrorText", fancy.ErrorText},
		{"PathText", fancy.PathText},
		{"SummaryText", fancy.SummaryText},
		{"CountText", fancy.CountText},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			assert.Contains(s.T(), tt.render("value"), "value")
		})
	}
}

func TestStylesSuite(t *testing.T) {
	suite.Run(t, new(StylesTestSuite))
}
