package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/psync/internal/core/domain"
)

func TestItem_Matches(t *testing.T) {
	tests := []struct {
		name    string
		item    domain.Item
		include string
		want    bool
	}{
		{
			name:    "exact match",
			item:    domain.Item{Kind: "Compile", Include: `src\Foo.cs`},
			include: `src\Foo.cs`,
			want:    true,
		},
		{
			name:    "case insensitive",
			item:    domain.Item{Kind: "Compile", Include: `src\Foo.cs`},
			include: `SRC\foo.CS`,
			want:    true,
		},
		{
			name:    "separator insensitive",
			item:    domain.Item{Kind: "Compile", Include: `src\Foo.cs`},
			include: "src/Foo.cs",
			want:    true,
		},
		{
			name:    "different file",
			item:    domain.Item{Kind: "Compile", Include: `src\Foo.cs`},
			include: `src\Bar.cs`,
			want:    false,
		},
		{
			name:    "different directory",
			item:    domain.Item{Kind: "Compile", Include: `src\Foo.cs`},
			include: `lib\Foo.cs`,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Matches(tt.include))
		})
	}
}

func TestToInclude(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want string
	}{
		{name: "nested path", rel: filepath.Join("src", "models", "User.cs"), want: `src\models\User.cs`},
		{name: "bare file", rel: "Program.cs", want: "Program.cs"},
		{name: "already backslashed", rel: `src\User.cs`, want: `src\User.cs`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ToInclude(tt.rel))
		})
	}
}

func TestFromInclude(t *testing.T) {
	got := domain.FromInclude(`src\models\User.cs`)
	assert.Equal(t, filepath.Join("src", "models", "User.cs"), got)
}

func TestNewProjectRef(t *testing.T) {
	ref := domain.NewProjectRef("/work/app/MyApp.csproj")
	assert.Equal(t, "MyApp", ref.Name)
	assert.Equal(t, "/work/app/MyApp.csproj", ref.Path)
	assert.Equal(t, filepath.FromSlash("/work/app"), ref.Dir())
}

func TestConfig_KindFor(t *testing.T) {
	cfg := domain.DefaultConfig()

	tests := []struct {
		name     string
		path     string
		wantKind string
		wantOK   bool
	}{
		{name: "cs file", path: "src/Program.cs", wantKind: "Compile", wantOK: true},
		{name: "uppercase extension", path: "src/Program.CS", wantKind: "Compile", wantOK: true},
		{name: "resource", path: "Strings.resx", wantKind: "EmbeddedResource", wantOK: true},
		{name: "unmapped extension", path: "notes.txt", wantOK: false},
		{name: "no extension", path: "Makefile", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := cfg.KindFor(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}

func TestConfig_Excluded(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.True(t, cfg.Excluded("bin"))
	assert.True(t, cfg.Excluded(".git"))
	assert.False(t, cfg.Excluded("src"))
}
