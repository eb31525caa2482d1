package core

import (
	"net/mail"
	"strings"
	"testing"
)

func TestEmailMessage_Render(t *testing.T) {
	data := struct {
		StudentName    string
		TeacherName    string
		Type           string
		AssignmentName string
		Number         string
		Date           string
		WeekNumber     int
	}{"Ann", "Mr. Keating", "project", "Poem", "", "2024-01-01", 1}

	tests := []struct {
		name     string
		msg      EmailMessage
		wantText string
		wantHTML string
		wantErr  bool
	}{
		{
			name:     "plain body",
			msg:      EmailMessage{To: []mail.Address{{Address: "ann@x.com"}}, BodyStr: "hello"},
			wantText: "hello",
		},
		{
			name:     "template",
			msg:      EmailMessage{TemplateName: "missing_work", TemplateData: data, AppName: "Carpe"},
			wantText: `Mr. Keating has not received your project "Poem" dated 2024-01-01 (week 1).`,
			wantHTML: "<strong>Poem</strong> dated 2024-01-01",
		},
		{
			name:    "missing data",
			msg:     EmailMessage{TemplateName: "missing_work", TemplateData: struct{ StudentName string }{"Ann"}},
			wantErr: true,
		},
		{name: "unknown template", msg: EmailMessage{TemplateName: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Render()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !strings.Contains(tt.msg.TextContent, tt.wantText) {
				t.Errorf("TextContent = %q, want %q", tt.msg.TextContent, tt.wantText)
			}
			if !strings.Contains(tt.msg.HTMLContent, tt.wantHTML) {
				t.Errorf("HTMLContent = %q, want %q", tt.msg.HTMLContent, tt.wantHTML)
			}
			if tt.msg.TemplateName == "missing_work" && !strings.HasSuffix(tt.msg.TextContent, "--\nCarpe") {
				t.Errorf("TextContent = %q, want the app name footer", tt.msg.TextContent)
			}
		})
	}
}
