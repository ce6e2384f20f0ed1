package locale

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Issue kinds reported by Audit
const (
	IssueMissing      = "missing"      // key declared in keys.go without a message
	IssueUndeclared   = "undeclared"   // message whose key is not declared in keys.go
	IssuePlaceholders = "placeholders" // template fields disagree with the callers
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*\.f(\d+)\s*\}\}`)

// Issue is one problem in a translation file
type Issue struct {
	Kind   string
	Lang   string
	Key    string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s/%s: %s", i.Kind, i.Lang, i.Key, i.Detail)
}

// Audit checks every embedded translation file against the message keys declared in
// keysFile and against the MustLocalizeWithTemplate calls found in the Go sources of srcDirs.
// A template message must declare fields f1..fN and every caller must pass exactly N values.
func Audit(keysFile string, srcDirs ...string) ([]Issue, error) {
	declared, err := declaredKeys(keysFile)
	if err != nil {
		return nil, fmt.Errorf("read message keys: %w", err)
	}

	calls := make(map[string][]int)
	for _, dir := range srcDirs {
		if err := collectTemplateCalls(dir, declared, calls); err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
	}

	files, err := fs.Glob(localizedata, "locales/*.json")
	if err != nil {
		return nil, fmt.Errorf("list translation files: %w", err)
	}

	var issues []Issue
	for _, f := range files {
		lang := strings.TrimSuffix(path.Base(f), ".json")

		messages, err := loadMessages(f)
		if err != nil {
			return nil, err
		}

		issues = append(issues, keyIssues(lang, declared, messages)...)
		issues = append(issues, placeholderIssues(lang, messages, calls)...)
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].String() < issues[j].String()
	})
	return issues, nil
}

// declaredKeys maps each string constant in keysFile to its message ID
func declaredKeys(keysFile string) (map[string]string, error) {
	node, err := parser.ParseFile(token.NewFileSet(), keysFile, nil, 0)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]string)
	for _, decl := range node.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range vs.Names {
				if i >= len(vs.Values) {
					break
				}
				lit, ok := vs.Values[i].(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					continue
				}
				if id, err := strconv.Unquote(lit.Value); err == nil {
					keys[name.Name] = id
				}
			}
		}
	}
	return keys, nil
}

// collectTemplateCalls records the number of template values passed for each message ID.
// Calls that spread a slice are skipped since their count is unknown.
func collectTemplateCalls(dir string, declared map[string]string, calls map[string][]int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, 0)
		if err != nil {
			return err
		}

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || len(call.Args) == 0 || call.Ellipsis.IsValid() {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || sel.Sel.Name != "MustLocalizeWithTemplate" {
				return true
			}
			if id, ok := declared[keyConstName(call.Args[0])]; ok {
				calls[id] = append(calls[id], len(call.Args)-1)
			}
			return true
		})
	}
	return nil
}

// keyConstName resolves locale.Key and Key expressions to the constant name
func keyConstName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		if pkg, ok := e.X.(*ast.Ident); ok && pkg.Name == "locale" {
			return e.Sel.Name
		}
	}
	return ""
}

func loadMessages(file string) (map[string]string, error) {
	data, err := localizedata.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return messages, nil
}

func keyIssues(lang string, declared map[string]string, messages map[string]string) []Issue {
	var issues []Issue

	known := make(map[string]bool, len(declared))
	for _, id := range declared {
		known[id] = true
		if _, ok := messages[id]; !ok {
			issues = append(issues, Issue{Kind: IssueMissing, Lang: lang, Key: id, Detail: "no message"})
		}
	}

	for id := range messages {
		if !known[id] {
			issues = append(issues, Issue{Kind: IssueUndeclared, Lang: lang, Key: id, Detail: "not declared in keys.go"})
		}
	}
	return issues
}

func placeholderIssues(lang string, messages map[string]string, calls map[string][]int) []Issue {
	var issues []Issue

	for id, msg := range messages {
		fields := placeholderFields(msg)
		want := 0
		if len(fields) > 0 {
			want = fields[len(fields)-1]
		}

		if len(fields) != want {
			issues = append(issues, Issue{
				Kind: IssuePlaceholders, Lang: lang, Key: id,
				Detail: fmt.Sprintf("fields %v are not numbered f1..f%d", fields, want),
			})
		}

		counts, used := calls[id]
		if !used {
			if want > 0 {
				issues = append(issues, Issue{
					Kind: IssuePlaceholders, Lang: lang, Key: id,
					Detail: fmt.Sprintf("declares %d fields but is never rendered as a template", want),
				})
			}
			continue
		}

		for _, got := range counts {
			if got != want {
				issues = append(issues, Issue{
					Kind: IssuePlaceholders, Lang: lang, Key: id,
					Detail: fmt.Sprintf("caller passes %d values, message expects %d", got, want),
				})
			}
		}
	}
	return issues
}

// placeholderFields returns the distinct field numbers of msg in ascending order
func placeholderFields(msg string) []int {
	seen := make(map[int]bool)
	var fields []int
	for _, m := range placeholderPattern.FindAllStringSubmatch(msg, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		fields = append(fields, n)
	}
	sort.Ints(fields)
	return fields
}
