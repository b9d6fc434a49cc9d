// Package assets embeds the built-in shaders and the example configuration file.
package assets

import (
	"embed"
	"fmt"

	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
)

//go:embed shaders/*.glsl lighthouse.yaml
var files embed.FS

// ExampleConfig returns the annotated example configuration file.
func ExampleConfig() []byte {
	data, err := files.ReadFile("lighthouse.yaml")
	if err != nil {
		panic(fmt.Sprintf("assets: embedded example config missing: %v", err))
	}
	return data
}

// Shader loads a shader stage from path, or the built-in stage when path is empty.
//
// Parameters:
//   - shaderType: the pipeline stage
//   - path: file path of the shader source, "" for the built-in one
//
// Returns:
//   - shader.Source: the loaded source
//   - error: error if the file cannot be read
func Shader(shaderType shader.ShaderType, path string) (shader.Source, error) {
	key := shaderType.String()
	if path != "" {
		return shader.LoadSource(key, shaderType, path)
	}

	var name string
	switch shaderType {
	case shader.ShaderTypeVertex:
		name = "shaders/vert.glsl"
	case shader.ShaderTypeFragment:
		name = "shaders/frag.glsl"
	default:
		return shader.Source{}, fmt.Errorf("no built-in %s shader", shaderType)
	}
	code, err := files.ReadFile(name)
	if err != nil {
		return shader.Source{}, fmt.Errorf("failed to read built-in %s shader: %w", shaderType, err)
	}
	return shader.Source{Key: key + " (built-in)", Type: shaderType, Code: string(code)}, nil
}
