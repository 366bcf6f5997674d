package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/go/ast/astutil"
)

// DefaultModulePath is the import path prefix of generated code.
const DefaultModulePath = "github.com/nfrund/botsamples"

var (
	// ErrInvalidName is returned for bot names that are not valid package names.
	ErrInvalidName = errors.New("bot name must be lowercase letters and digits, starting with a letter")
	// ErrExists is returned when the bot's package directory already exists.
	ErrExists = errors.New("bot module already exists")
	// ErrNoModulesList is returned when app/modules.go has no NewModules slice to extend.
	ErrNoModulesList = errors.New("NewModules return slice not found")

	validName = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
)

// Generator scaffolds new bot modules inside a checkout.
type Generator struct {
	// Root is the repository root containing internal/.
	Root string
	// ModulePath is the Go module path, DefaultModulePath when empty.
	ModulePath string
}

// TemplateData is passed to the file templates.
type TemplateData struct {
	Name       string
	PascalName string
	ModulePath string
}

// NewBot creates internal/modules/<name> with a bot and its module, and
// registers the module in internal/app/modules.go.
func (g Generator) NewBot(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	modulePath := g.ModulePath
	if modulePath == "" {
		modulePath = DefaultModulePath
	}
	data := TemplateData{
		Name:       name,
		PascalName: cases.Title(language.English).String(name),
		ModulePath: modulePath,
	}

	moduleDir := filepath.Join(g.Root, "internal", "modules", name)
	if _, err := os.Stat(moduleDir); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, moduleDir)
	}
	if err := os.MkdirAll(moduleDir, 0o755); err != nil {
		return fmt.Errorf("failed to create module directory: %w", err)
	}

	if err := generateFile(filepath.Join(moduleDir, "module.go"), moduleTemplate, data); err != nil {
		return err
	}
	if err := generateFile(filepath.Join(moduleDir, "bot.go"), botTemplate, data); err != nil {
		return err
	}
	return g.updateModulesFile(data)
}

func generateFile(path string, tmpl string, data TemplateData) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}
	return os.WriteFile(path, src, 0o644)
}

// updateModulesFile adds "<name>.New()" to the slice returned by NewModules.
func (g Generator) updateModulesFile(data TemplateData) error {
	modulesPath := filepath.Join(g.Root, "internal", "app", "modules.go")
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, modulesPath, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", modulesPath, err)
	}

	astutil.AddImport(fset, node, data.ModulePath+"/internal/modules/"+data.Name)

	found := false
	ast.Inspect(node, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "NewModules" {
			return true
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			ret, ok := n.(*ast.ReturnStmt)
			if !ok || len(ret.Results) == 0 {
				return true
			}
			compLit, ok := ret.Results[0].(*ast.CompositeLit)
			if !ok {
				return false
			}
			compLit.Elts = append(compLit.Elts, &ast.CallExpr{
				Fun: &ast.SelectorExpr{X: ast.NewIdent(data.Name), Sel: ast.NewIdent("New")},
			})
			found = true
			return false
		})
		return false
	})
	if !found {
		return fmt.Errorf("%w in %s", ErrNoModulesList, modulesPath)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, node); err != nil {
		return fmt.Errorf("failed to format AST: %w", err)
	}
	if err := os.WriteFile(modulesPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", modulesPath, err)
	}
	return nil
}

const moduleTemplate = `package {{.Name}}

import (
	"log/slog"

	"{{.ModulePath}}/internal/bot"
	"{{.ModulePath}}/internal/module"
	"{{.ModulePath}}/internal/registry"
)

// Name is the module and bot name selected with BOT_NAME={{.Name}}.
const Name = "{{.Name}}"

// {{.PascalName}}Module registers the {{.Name}} bot.
type {{.PascalName}}Module struct {
	module.BaseModule
	bot bot.Bot
}

// New creates a new {{.PascalName}}Module instance.
func New() *{{.PascalName}}Module {
	return &{{.PascalName}}Module{
		bot: bot.NewActivityHandler(NewBot()),
	}
}

// Name returns the module name
func (m *{{.PascalName}}Module) Name() string {
	return Name
}

// Register makes the bot available to the server.
func (m *{{.PascalName}}Module) Register(reg *registry.Registry) error {
	registry.Set(reg, registry.BotKey(Name), m.bot)
	slog.Info("{{.PascalName}}Module registered")
	return nil
}
`

const botTemplate = `package {{.Name}}

import (
	"context"

	"{{.ModulePath}}/internal/turn"
)

// Bot is the {{.Name}} bot.
type Bot struct{}

// NewBot creates a {{.Name}} bot.
func NewBot() *Bot {
	return &Bot{}
}

// OnMessage answers every message.
func (b *Bot) OnMessage(ctx context.Context, tc *turn.Context) error {
	_, err := tc.SendText(ctx, "Hello from {{.Name}}!")
	return err
}
`
