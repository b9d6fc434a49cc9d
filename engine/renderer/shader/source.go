package shader

import (
	"fmt"
	"os"
	"strings"
)

// ShaderType identifies which pipeline stage a shader source belongs to.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, used in pair with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// Source is a loaded shader stage: its key, stage and GLSL/WGSL text.
// Backends compile it; this package never interprets the text.
type Source struct {
	// Key is the unique identifier used in logs and error messages.
	Key string

	// Type is the pipeline stage.
	Type ShaderType

	// Code is the raw shader text.
	Code string
}

// LoadSource reads a shader stage from disk.
//
// Parameters:
//   - key: the identifier for the stage
//   - shaderType: the pipeline stage
//   - path: file path of the shader source
//
// Returns:
//   - Source: the loaded source
//   - error: error if the file cannot be read or is empty
func LoadSource(key string, shaderType ShaderType, path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s shader %s: %w", shaderType, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return Source{}, fmt.Errorf("%s shader %s is empty", shaderType, path)
	}
	return Source{Key: key, Type: shaderType, Code: string(data)}, nil
}
