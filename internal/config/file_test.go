package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetConfigPaths(t *testing.T) {
	runInTempDir(t)

	paths := GetConfigPaths()
	if len(paths) == 0 {
		t.Fatal("GetConfigPaths() returned no paths")
	}

	if paths[0] != filepath.Join(".", ".hadoop-repl", ConfigFileName) {
		t.Errorf("first path = %q, want local project config", paths[0])
	}

	for _, p := range paths {
		if !strings.HasSuffix(p, ConfigFileName) {
			t.Errorf("path %q does not end with %q", p, ConfigFileName)
		}
	}
}

func TestLoadConfigFile_NoFile(t *testing.T) {
	runInTempDir(t)

	fc, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if fc == nil {
		t.Fatal("LoadConfigFile() returned nil config")
	}
	if fc.FileSystem != nil || fc.HDFS != nil || fc.REPL != nil {
		t.Errorf("expected empty config, got %+v", fc)
	}
}

func TestLoadConfigFile_LocalProjectConfig(t *testing.T) {
	tmpDir := runInTempDir(t)

	dir := filepath.Join(tmpDir, ".hadoop-repl")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	content := `
hdfs:
  namenodes:
    - nn1:8020
  user: alice
repl:
  editor: readline
logging:
  level: debug
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fc, err := LoadConfigFile()
	if err != nil {
		t.Fatalf("LoadConfigFile() error = %v", err)
	}
	if fc.HDFS == nil || len(fc.HDFS.NameNodes) != 1 || fc.HDFS.NameNodes[0] != "nn1:8020" {
		t.Errorf("HDFS = %+v", fc.HDFS)
	}
	if fc.HDFS.User != "alice" {
		t.Errorf("User = %q, want alice", fc.HDFS.User)
	}
	if fc.REPL == nil || fc.REPL.Editor != "readline" {
		t.Errorf("REPL = %+v", fc.REPL)
	}
	if fc.Logging == nil || fc.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", fc.Logging)
	}
}

func TestLoadConfigFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(path, []byte("hdfs: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := loadConfigFromPath(path); err == nil {
		t.Error("loadConfigFromPath() should fail on invalid YAML")
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "cluster.yaml")

	want := &FileConfig{
		FileSystem: &FileSystemConfig{Type: "local", Root: "/data/dfs"},
		Cluster: &ClusterConfig{
			ID:             "abc",
			DFSHTTP:        "http://127.0.0.1:1234",
			JobTrackerHTTP: "http://127.0.0.1:5678",
		},
	}
	if err := WriteConfigFile(path, want); err != nil {
		t.Fatalf("WriteConfigFile() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions = %v, want 0600", info.Mode().Perm())
	}

	got, err := loadConfigFromPath(path)
	if err != nil {
		t.Fatalf("loadConfigFromPath() error = %v", err)
	}
	if got.FileSystem == nil || *got.FileSystem != *want.FileSystem {
		t.Errorf("FileSystem = %+v, want %+v", got.FileSystem, want.FileSystem)
	}
	if got.Cluster == nil || *got.Cluster != *want.Cluster {
		t.Errorf("Cluster = %+v, want %+v", got.Cluster, want.Cluster)
	}
	if got.HDFS != nil {
		t.Errorf("HDFS should be omitted, got %+v", got.HDFS)
	}
}

func TestApplyFileConfig_Nil(t *testing.T) {
	cfg := NewConfig()
	cfg.ApplyFileConfig(nil)
	if cfg.FileSystem != "" || cfg.Prompt != "" {
		t.Errorf("nil file config changed values: %+v", cfg)
	}
}

func TestApplyFileConfig_FillsEmptyFields(t *testing.T) {
	cfg := NewConfig()
	fc := &FileConfig{
		FileSystem: &FileSystemConfig{Type: "local", Root: "/r"},
		HDFS:       &HDFSConfig{NameNodes: []string{"nn:8020"}, User: "u", HadoopConfDir: "/etc/hadoop"},
		REPL:       &REPLConfig{Prompt: "p> ", Editor: "readline", HistoryFile: "/h", Render: true},
		Logging:    &LoggingConfig{Level: "info", Format: "json"},
		Cluster:    &ClusterConfig{ID: "id"},
	}
	cfg.ApplyFileConfig(fc)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"FileSystem", cfg.FileSystem, "local"},
		{"LocalRoot", cfg.LocalRoot, "/r"},
		{"User", cfg.User, "u"},
		{"HadoopConfDir", cfg.HadoopConfDir, "/etc/hadoop"},
		{"Prompt", cfg.Prompt, "p> "},
		{"Editor", cfg.Editor, "readline"},
		{"HistoryFile", cfg.HistoryFile, "/h"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}

	if !cfg.Render {
		t.Error("Render should be true")
	}
	if len(cfg.NameNodes) != 1 {
		t.Errorf("NameNodes = %v", cfg.NameNodes)
	}
	if cfg.Cluster == nil || cfg.Cluster.ID != "id" {
		t.Errorf("Cluster = %+v", cfg.Cluster)
	}

	// The cluster section is copied, not shared
	fc.Cluster.ID = "changed"
	if cfg.Cluster.ID != "id" {
		t.Error("Cluster should be a copy of the file value")
	}
}

func TestApplyFileConfig_DoesNotOverride(t *testing.T) {
	cfg := NewConfig()
	cfg.User = "flag-user"
	cfg.Editor = "prompt"
	cfg.NameNodes = []string{"flag:8020"}

	cfg.ApplyFileConfig(&FileConfig{
		HDFS: &HDFSConfig{NameNodes: []string{"file:8020"}, User: "file-user"},
		REPL: &REPLConfig{Editor: "readline"},
	})

	if cfg.User != "flag-user" {
		t.Errorf("User = %q, want flag-user", cfg.User)
	}
	if cfg.Editor != "prompt" {
		t.Errorf("Editor = %q, want prompt", cfg.Editor)
	}
	if cfg.NameNodes[0] != "flag:8020" {
		t.Errorf("NameNodes = %v", cfg.NameNodes)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	runInTempDir(t)

	path, err := CreateDefaultConfigFile()
	if err != nil {
		t.Fatalf("CreateDefaultConfigFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read created file: %v", err)
	}
	if !strings.Contains(string(data), "hadoop-repl configuration") {
		t.Error("default config missing header")
	}

	// Commented defaults parse to an empty config
	fc, err := loadConfigFromPath(path)
	if err != nil {
		t.Fatalf("default config should parse: %v", err)
	}
	if fc.HDFS != nil {
		t.Errorf("default config should be all comments, got %+v", fc.HDFS)
	}

	if _, err := CreateDefaultConfigFile(); err == nil {
		t.Error("second CreateDefaultConfigFile() should report existing file")
	}
}
