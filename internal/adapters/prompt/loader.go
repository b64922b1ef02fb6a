package prompt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bnema/page-migration/internal/domain"
	"github.com/bnema/page-migration/internal/ports"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	yamlDelimiter = regexp.MustCompile(`(?m)^---[ \t]*\r?$`)
	tomlDelimiter = regexp.MustCompile(`(?m)^\+\+\+[ \t]*\r?$`)
	openingFence  = regexp.MustCompile("(?m)^```prompt\r?\n")
	closingFence  = regexp.MustCompile("\n```\\s*$")

	requiredFrontmatterKeys = []string{"role", "task", "output_format"}
)

type Loader struct{}

var (
	_ ports.PromptLoader  = (*Loader)(nil)
	_ ports.PromptCatalog = (*Loader)(nil)
)

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Load(ctx context.Context, path string) (domain.PromptDefinition, error) {
	if err := ctx.Err(); err != nil {
		return domain.PromptDefinition{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.PromptDefinition{}, &domain.FileNotFoundError{FilePath: path}
		}
		return domain.PromptDefinition{}, fmt.Errorf("read prompt %s: %w", path, err)
	}

	return Parse(path, string(data))
}

// Parse picks the prompt format from the leading bytes of raw.
func Parse(path string, raw string) (domain.PromptDefinition, error) {
	switch {
	case strings.HasPrefix(raw, "---"):
		return parseFrontmatter(path, raw, yamlDelimiter, domain.SourceFrontmatter, yaml.Unmarshal)
	case strings.HasPrefix(raw, "+++"):
		return parseFrontmatter(path, raw, tomlDelimiter, domain.SourceTOMLFrontmatter, toml.Unmarshal)
	case strings.HasPrefix(strings.TrimSpace(raw), "{"):
		return parseJSON(path, raw)
	default:
		return parsePlainText(path, raw), nil
	}
}

func parseFrontmatter(path string, raw string, delimiter *regexp.Regexp, source domain.PromptSource, unmarshal func([]byte, any) error) (domain.PromptDefinition, error) {
	parts := delimiter.Split(raw, 3)
	if len(parts) < 3 {
		return domain.PromptDefinition{}, &domain.ParseError{FilePath: path, Err: errors.New("unclosed frontmatter")}
	}

	fields := map[string]any{}
	if err := unmarshal([]byte(parts[1]), &fields); err != nil {
		return domain.PromptDefinition{}, &domain.ParseError{FilePath: path, Err: err}
	}

	var missing []string
	for _, key := range requiredFrontmatterKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return domain.PromptDefinition{}, &domain.ParseError{
			FilePath: path,
			Err:      fmt.Errorf("frontmatter missing %s", strings.Join(missing, ", ")),
		}
	}

	return domain.PromptDefinition{
		Role:         stringField(fields["role"]),
		Task:         stringField(fields["task"]),
		Content:      strings.TrimSpace(parts[2]),
		OutputFormat: fields["output_format"],
		Source:       source,
	}, nil
}

type jsonPrompt struct {
	Role         string `json:"role"`
	Task         string `json:"task"`
	Content      string `json:"content"`
	OutputFormat any    `json:"output_format"`
}

func parseJSON(path string, raw string) (domain.PromptDefinition, error) {
	raw = openingFence.ReplaceAllString(raw, "")
	raw = closingFence.ReplaceAllString(raw, "")

	var decoded jsonPrompt
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return domain.PromptDefinition{}, &domain.ParseError{FilePath: path, Err: err}
	}

	definition := domain.PromptDefinition{
		Role:         decoded.Role,
		Task:         decoded.Task,
		Content:      decoded.Content,
		OutputFormat: decoded.OutputFormat,
		Source:       domain.SourceJSON,
	}
	if definition.Role == "" {
		definition.Role = domain.DefaultPromptRole
	}
	if definition.Task == "" {
		definition.Task = TaskName(path)
	}
	if definition.OutputFormat == nil {
		definition.OutputFormat = domain.DefaultOutputFormat()
	}

	return definition, nil
}

func parsePlainText(path string, raw string) domain.PromptDefinition {
	return domain.PromptDefinition{
		Role:         domain.DefaultPromptRole,
		Task:         TaskName(path),
		Content:      strings.TrimSpace(raw),
		OutputFormat: domain.DefaultOutputFormat(),
		Source:       domain.SourcePlainText,
	}
}

// TaskName turns "company_overview.prompt.md" into "Company overview".
func TaskName(path string) string {
	name := strings.ToLower(strings.ReplaceAll(domain.PromptName(path), "_", " "))
	if name == "" {
		return name
	}

	runes := []rune(name)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

func (l *Loader) Discover(ctx context.Context, root string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Discover(root)
}

// Discover lists every prompt file below root in path order.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.FileNotFoundError{FilePath: root}
		}
		return nil, fmt.Errorf("stat prompts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prompts path %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), domain.PromptFileSuffix) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk prompts directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

func stringField(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}
