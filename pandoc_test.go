package md2docx

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPandocAssembler - pandoc invocation
// ---------------------------------------------------------------------------

func TestPandocAssembler_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    *PandocAssembler
		want []string
	}{
		{
			name: "defaults",
			p:    NewPandocAssembler(),
			want: []string{"out/merged.md", "-o", "out/output.docx", "--from", "markdown", "--to", "docx", "--toc", "--toc-depth", "1", "--resource-path", "out"},
		},
		{
			name: "no toc with extras",
			p:    &PandocAssembler{From: "gfm", To: "docx", ReferenceDoc: "ref.docx", Title: "My Book"},
			want: []string{"out/merged.md", "-o", "out/output.docx", "--from", "gfm", "--to", "docx", "--resource-path", "out", "--reference-doc", "ref.docx", "--metadata", "title=My Book"},
		},
		{
			name: "toc depth",
			p:    &PandocAssembler{From: "markdown", To: "docx", TOC: true, TOCDepth: 3},
			want: []string{"out/merged.md", "-o", "out/output.docx", "--from", "markdown", "--to", "docx", "--toc", "--toc-depth", "3", "--resource-path", "out"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.p.Args("out/merged.md", "out/output.docx", "out"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() =\n%v\nwant\n%v", got, tt.want)
			}
		})
	}
}

func TestPandocAssembler_Assemble(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		mock := &MockRunner{}
		p := NewPandocAssembler()
		p.Runner = mock

		if err := p.Assemble(context.Background(), "m.md", "o.docx", "out"); err != nil {
			t.Fatalf("Assemble() unexpected error: %v", err)
		}
		if mock.CalledWith[0] != "pandoc" || mock.CalledWith[1] != "m.md" {
			t.Errorf("CalledWith = %v", mock.CalledWith)
		}
	})

	t.Run("failure carries stderr", func(t *testing.T) {
		t.Parallel()

		mock := &MockRunner{Stderr: "pandoc: Could not find reference doc\n", Err: errors.New("exit status 1")}
		p := &PandocAssembler{Runner: mock, Binary: "/usr/local/bin/pandoc", From: "markdown", To: "docx"}

		err := p.Assemble(context.Background(), "m.md", "o.docx", "out")
		if !errors.Is(err, ErrConversion) {
			t.Fatalf("Assemble() error = %v, want ErrConversion", err)
		}
		var te *ToolError
		if !errors.As(err, &te) || te.Diagnostic() != "pandoc: Could not find reference doc" {
			t.Errorf("Assemble() error = %#v", err)
		}
		if mock.CalledWith[0] != "/usr/local/bin/pandoc" {
			t.Errorf("binary = %q", mock.CalledWith[0])
		}
	})
}
