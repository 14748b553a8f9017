package gemini

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{
						genai.Text(`{"Employer Name":`),
						genai.Text(` "Acme"}`),
					},
				},
			},
		},
	}

	got := responseText(resp)
	want := `{"Employer Name": "Acme"}`
	if got != want {
		t.Errorf("responseText() = %q, want %q", got, want)
	}
}

func TestResponseTextEmpty(t *testing.T) {
	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := responseText(tc.resp); got != "" {
				t.Errorf("responseText() = %q, want empty", got)
			}
		})
	}
}

func TestResponseTextSkipsNonTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{
						genai.Blob{MIMEType: "application/pdf", Data: []byte{0x25}},
						genai.Text(`{"ok": true}`),
					},
				},
			},
		},
	}
	if got := responseText(resp); got != `{"ok": true}` {
		t.Errorf("responseText() = %q, want only the text part", got)
	}
}
