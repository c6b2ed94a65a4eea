package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		metadata map[string]any
		body     string
	}{
		{
			name:     "frontmatter and body",
			content:  "---\nSubject: New Contact Form Submission\nForm: contact\n---\nName: {{.Name}}\n",
			metadata: map[string]any{"Subject": "New Contact Form Submission", "Form": "contact"},
			body:     "Name: {{.Name}}\n",
		},
		{
			name:     "no frontmatter",
			content:  "Name: {{.Name}}",
			metadata: map[string]any{},
			body:     "Name: {{.Name}}",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n---\nBody",
			metadata: map[string]any{},
			body:     "Body",
		},
		{
			name:     "whitespace frontmatter",
			content:  "---\n\n---\nBody",
			metadata: map[string]any{},
			body:     "Body",
		},
		{
			name:     "windows line endings",
			content:  "---\r\nSubject: Test\r\n---\r\nBody",
			metadata: map[string]any{"Subject": "Test"},
			body:     "Body",
		},
		{
			name:     "empty body",
			content:  "---\nSubject: Test\n---\n",
			metadata: map[string]any{"Subject": "Test"},
			body:     "",
		},
		{
			name:     "numeric values keep their yaml type",
			content:  "---\nRetries: 3\nWeight: 0.5\n---\nBody",
			metadata: map[string]any{"Retries": 3, "Weight": 0.5},
			body:     "Body",
		},
		{
			name:     "empty content",
			content:  "",
			metadata: map[string]any{},
			body:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.metadata, tmpl.Metadata)
			require.Equal(t, tt.body, tmpl.Body)
		})
	}
}

func TestParseTemplate_BodyMayContainDelimiters(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("---\nSubject: S\n---\nbefore\n---\nafter\n"))
	require.NoError(t, err)
	require.Equal(t, "before\n---\nafter\n", tmpl.Body)
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "only opening delimiter", content: "---"},
		{name: "missing closing delimiter", content: "---\nSubject: Test\nBody"},
		{name: "broken yaml", content: "---\nSubject: [unclosed\n---\nBody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			require.ErrorIs(t, err, ErrInvalidFrontmatter)
			require.Nil(t, tmpl)
		})
	}
}
