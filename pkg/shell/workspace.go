package shell

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// workspaceFile is the name of the per-directory workspace file. It lists
// definition files to load before evaluating anything in that directory.
const workspaceFile = "ogma.yaml"

type workspace struct {
	Definitions []string `yaml:"definitions"`
}

// loadWorkspace reads the workspace file in dir. It returns (nil, nil)
// when there is none.
func loadWorkspace(dir string) (*workspace, error) {
	buf, err := os.ReadFile(filepath.Join(dir, workspaceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var ws workspace
	if err := yaml.Unmarshal(buf, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}
