package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"WARNING", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{" info ", SeverityInfo, false},
		{"Off", SeverityOff, false},
		{"fatal", SeverityError, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityYAML(t *testing.T) {
	t.Parallel()
	var rules map[string]ConfigRule
	err := yaml.Unmarshal([]byte("mismatch:\n  severity: warning\nunclosed-opener:\n  severity: off\n"), &rules)
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, rules["mismatch"].Severity)
	assert.Equal(t, SeverityOff, rules["unclosed-opener"].Severity)

	out, err := yaml.Marshal(ConfigRule{Severity: SeverityInfo})
	require.NoError(t, err)
	assert.Equal(t, "severity: info\n", string(out))

	err = yaml.Unmarshal([]byte("severity: loud\n"), &ConfigRule{})
	assert.Error(t, err)
}

func TestIssueJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(Issue{Rule: "mismatch", Severity: SeverityWarning})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"warning"`)
	assert.Equal(t, "UNKNOWN", Severity(17).String())
}
