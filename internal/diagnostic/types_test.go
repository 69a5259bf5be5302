package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning(CodeDuplicateBinding, "type Foo declared twice", "{urn:a}Foo", "complexType Foo", "http://x/a.xsd")
	d.AddInfo(CodeGrammar, "skipped", "", "", "")
	assert.True(t, d.IsValid())
	assert.Equal(t, 2, d.Len())

	d.AddError(CodeUnresolvedType, "type {urn:a}Missing not found", "{urn:a}Missing", "element Bar", "http://x/a.xsd")
	assert.True(t, d.HasErrors())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "[http://x/a.xsd] element Bar: [unresolved-type] type {urn:a}Missing not found", err.Error())

	all := d.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)

	assert.Len(t, d.WithCode(CodeDuplicateBinding), 1)
	assert.Empty(t, d.WithCode(CodeGroupCycle))
}

func TestMerge(t *testing.T) {
	var a, b Diagnostics
	a.AddError(CodeImportURL, "bad", "", "", "")
	b.AddWarning(CodeGrammar, "skipped", "", "", "")
	b.AddError(CodeGroupCycle, "cycle", "", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(42).String())
}

func TestSeverityText(t *testing.T) {
	text, err := DiagnosticWarning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(text))

	var s DiagnosticSeverity
	require.NoError(t, s.UnmarshalText([]byte("error")))
	assert.Equal(t, DiagnosticError, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}
