package md2docx

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMermaidURL is the mermaid.js bundle loaded by the browser renderer.
const DefaultMermaidURL = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"

// renderScript renders src with mermaid.js into #diagram.
const renderScript = `async (src, theme) => {
	mermaid.initialize({ startOnLoad: false, theme: theme || "default" });
	const { svg } = await mermaid.render("md2docx-diagram", src);
	document.getElementById("diagram").innerHTML = svg;
	return true;
}`

const diagramPageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0">
<div id="diagram" style="display:inline-block;background:%s"></div>
</body>
</html>`

// cssColor accepts color names, hex values and rgb()/hsl() forms.
var cssColor = regexp.MustCompile(`^[#a-zA-Z0-9(),.% ]+$`)

// BrowserRenderer renders diagrams in headless Chrome with mermaid.js,
// so mmdc is not needed. The browser starts on the first diagram and
// stays up until Close.
type BrowserRenderer struct {
	MermaidURL string
	Background string
	Theme      string
	Timeout    time.Duration // per diagram; zero disables

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// NewBrowserRenderer creates a BrowserRenderer loading mermaid.js from DefaultMermaidURL.
func NewBrowserRenderer() *BrowserRenderer {
	return &BrowserRenderer{
		MermaidURL: DefaultMermaidURL,
		Background: "white",
		Timeout:    DefaultRenderTimeout,
	}
}

// Name identifies the renderer in the error log.
func (r *BrowserRenderer) Name() string { return "browser" }

// ensureBrowser lazily launches and connects to Chrome.
func (r *BrowserRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.launcher = l
	return nil
}

// Render reads the Mermaid source in src and writes a PNG screenshot of
// the rendered diagram to dst.
func (r *BrowserRenderer) Render(ctx context.Context, src, dst string) error {
	source, err := os.ReadFile(src) // #nosec G304 -- staged diagram source
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetDocumentContent(fmt.Sprintf(diagramPageTemplate, r.background())); err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	mermaidURL := r.MermaidURL
	if mermaidURL == "" {
		mermaidURL = DefaultMermaidURL
	}
	if err := page.AddScriptTag(mermaidURL, ""); err != nil {
		return fmt.Errorf("%w: loading mermaid.js: %v", ErrRender, err)
	}

	if _, err := page.Eval(renderScript, string(source), r.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	el, err := page.Element("#diagram")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return fmt.Errorf("%w: screenshot: %v", ErrRender, err)
	}

	return os.WriteFile(dst, png, 0o644) // #nosec G306 -- artifact in the output dir
}

func (r *BrowserRenderer) background() string {
	if r.Background == "" || !cssColor.MatchString(r.Background) {
		return "white"
	}
	return r.Background
}

// Close shuts the browser down.
func (r *BrowserRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	if r.launcher != nil {
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}
