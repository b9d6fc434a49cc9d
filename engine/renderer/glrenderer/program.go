package glrenderer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/lighthouse/engine/renderer/shader"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked GL shader program. Uniform locations are looked up once and cached by name.
type Program struct {
	mu        *sync.Mutex
	id        uint32
	locations map[string]int32
}

var _ shader.Program = &Program{}

// NewProgram compiles every source and links them into one program. The program is made current.
//
// Parameters:
//   - sources: the shader stages, typically one vertex and one fragment stage
//
// Returns:
//   - *Program: the linked program
//   - error: error naming the failing stage with the driver's info log
func NewProgram(sources ...shader.Source) (*Program, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no shader sources given")
	}

	shaders := make([]uint32, 0, len(sources))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, src := range sources {
		s, err := compileShader(src)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, s)
	}

	id := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(id, s)
	}
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(length int32, buf *uint8) {
			gl.GetProgramInfoLog(id, length, nil, buf)
		})
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("failed to link program: %s", log)
	}

	p := &Program{
		mu:        &sync.Mutex{},
		id:        id,
		locations: make(map[string]int32),
	}
	p.Use()
	return p, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// UploadMatrix4 writes a column-major matrix into the named uniform of this program.
// Unknown uniforms are ignored, matching GL's treatment of location -1.
func (p *Program) UploadMatrix4(name string, value mgl32.Mat4, transpose bool) {
	loc := p.location(name)
	if loc < 0 {
		return
	}
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(loc, 1, transpose, &value[0])
}

// SetInt writes an integer uniform, typically a sampler's texture unit.
//
// Parameters:
//   - name: uniform name as declared in the shader
//   - value: the value to store
func (p *Program) SetInt(name string, value int32) {
	loc := p.location(name)
	if loc < 0 {
		return
	}
	gl.UseProgram(p.id)
	gl.Uniform1i(loc, value)
}

// Delete releases the GL program.
func (p *Program) Delete() {
	gl.DeleteProgram(p.id)
}

func (p *Program) location(name string) int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func compileShader(src shader.Source) (uint32, error) {
	stage, err := glStage(src.Type)
	if err != nil {
		return 0, err
	}

	s := gl.CreateShader(stage)
	csources, free := gl.Strs(src.Code + "\x00")
	gl.ShaderSource(s, 1, csources, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(length int32, buf *uint8) {
			gl.GetShaderInfoLog(s, length, nil, buf)
		})
		gl.DeleteShader(s)
		return 0, fmt.Errorf("failed to compile %s shader %q: %s", src.Type, src.Key, log)
	}
	return s, nil
}

// glStage maps a shader stage to its GL shader type.
func glStage(t shader.ShaderType) (uint32, error) {
	switch t {
	case shader.ShaderTypeVertex:
		return gl.VERTEX_SHADER, nil
	case shader.ShaderTypeFragment:
		return gl.FRAGMENT_SHADER, nil
	default:
		return 0, fmt.Errorf("unsupported shader stage %s", t)
	}
}

// infoLog reads a driver info log of the given length through read and trims the trailing NUL and whitespace.
func infoLog(length int32, read func(length int32, buf *uint8)) string {
	if length <= 0 {
		return "no info log"
	}
	buf := make([]uint8, length+1)
	read(length, &buf[0])
	return strings.TrimRight(string(buf), "\x00 \t\r\n")
}
