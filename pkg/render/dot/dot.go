package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/umlayout/pkg/diagram"
	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/layout"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatDOT}

// Options configures DOT generation.
type Options struct {
	// Detailed adds attribute and method counts below the class name.
	Detailed bool
	// Height is the canvas height used to flip y. Zero means the bottom edge
	// of the lowest class box.
	Height float64
}

// ToDOT converts a laid-out diagram to Graphviz DOT with pinned positions.
func ToDOT(d *diagram.ClassDiagram, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", graphName(d))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [shape=record, style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=14];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=11];\n")
	buf.WriteString("\n")

	height := opts.Height
	if height <= 0 {
		for _, c := range d.Classes() {
			height = max(height, c.Y+layout.NodeHeight(c))
		}
	}

	for _, c := range d.Classes() {
		w, h := layout.DefaultNodeWidth, layout.NodeHeight(c)
		cx, cy := c.X+w/2, height-(c.Y+h/2)
		fmt.Fprintf(&buf, "  %q [label=\"%s\", pos=\"%s,%s!\", width=%s, height=%s];\n",
			c.ID, recordLabel(c, opts.Detailed),
			num(cx), num(cy), num(w/72), num(h/72))
	}

	buf.WriteString("\n")
	v := diagram.NewView(d)
	for _, r := range v.Relations() {
		if _, _, ok := v.Endpoints(r.ID); !ok {
			continue
		}
		attrs := edgeAttrs(r.Kind)
		if r.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", r.Label))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", r.Source, r.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func graphName(d *diagram.ClassDiagram) string {
	if d.Name != "" {
		return d.Name
	}
	return "G"
}

func recordLabel(c *diagram.Class, detailed bool) string {
	header := escapeRecord(c.DisplayName())
	switch c.Kind {
	case diagram.KindInterface:
		header = "«interface»\\n" + header
	case diagram.KindAbstractClass:
		header = "«abstract»\\n" + header
	case diagram.KindEnum:
		header = "«enumeration»\\n" + header
	}
	if !detailed {
		return "{" + header + "}"
	}
	return fmt.Sprintf("{%s|%s\\l|%s\\l}", header,
		plural(c.Attributes, "attribute"), plural(c.Methods, "method"))
}

func edgeAttrs(k diagram.RelationKind) []string {
	switch k {
	case diagram.RelInheritance:
		return []string{"arrowhead=onormal"}
	case diagram.RelImplementation:
		return []string{"arrowhead=onormal", "style=dashed"}
	case diagram.RelComposition:
		return []string{"dir=back", "arrowtail=diamond"}
	case diagram.RelAggregation:
		return []string{"dir=back", "arrowtail=odiamond"}
	case diagram.RelDependency:
		return []string{"arrowhead=vee", "style=dashed"}
	default:
		return []string{"arrowhead=vee"}
	}
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`,
	"{", `\{`, "}", `\}`, "|", `\|`, "<", `\<`, ">", `\>`,
)

func escapeRecord(s string) string { return recordEscaper.Replace(s) }

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// =============================================================================
// Rendering
// =============================================================================

// Render renders DOT source in the given format. FormatDOT returns the
// source unchanged.
func Render(ctx context.Context, src, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		return RenderSVG(ctx, src)
	case FormatPNG:
		return RenderPNG(ctx, src)
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat,
		"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
}

// RenderSVG renders DOT source to SVG with the neato engine, which keeps the
// pinned node positions.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	out, err := render(ctx, src, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG with the neato engine.
func RenderPNG(ctx context.Context, src string) ([]byte, error) {
	return render(ctx, src, graphviz.PNG)
}

func render(ctx context.Context, src string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a unitless one
// so the drawing scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
