package render

import (
	"encoding/json"
	"io"
	"os"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
)

// Render encodes r into the requested format. All encoders are
// side-effect free; JSON marshals the model itself while the others
// consume its Document.
func Render(w io.Writer, format Format, r Renderable) error {
	switch format {
	case JSONFormat:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case TextFormat:
		return renderText(w, r.Document())
	case MarkdownFormat:
		return renderMarkdown(w, r.Document())
	case HTMLFormat:
		return renderHTML(w, r.Document())
	case MDHTMLFormat:
		return renderMDHTML(w, r.Document())
	default:
		return models.NewBaseError("unsupported output format %q", format).
			WithCode(models.UnknownFormat)
	}
}

// RenderToFile writes the rendering to path, or to fallback when path
// is empty.
func RenderToFile(path string, format Format, r Renderable, fallback io.Writer) error {
	if path == "" {
		return Render(fallback, format, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return models.NewBaseError("cannot write output to %s", path).
			WithCode(models.OutputWriteFailed).WithCause(err)
	}
	if err := Render(f, format, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return models.NewBaseError("cannot write output to %s", path).
			WithCode(models.OutputWriteFailed).WithCause(err)
	}
	return nil
}
