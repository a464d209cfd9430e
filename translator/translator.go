// Package translator converts WebGL2 shader sources into the dialect of the
// GL context in use.
package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// GetTranslator returns the shared translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("failed to create shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Shader is a translated source with the mapping from declared uniform
// names to the names in the output.
type Shader struct {
	Code     string
	Uniforms map[string]string
}

// Translate converts a WebGL2 source of the given stage ("vertex" or
// "fragment") to ESSL when gles is set, GLSL 410 otherwise.
func Translate(source, stage string, gles bool) (*Shader, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	format := gst.OutputFormatGLSL410
	if gles {
		format = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	s := &Shader{Code: out.Code, Uniforms: make(map[string]string, len(out.Variables))}
	for name, v := range out.Variables {
		s.Uniforms[name] = v.MappedName
	}
	return s, nil
}

// Uniform returns the output name of a declared uniform, falling back to the
// declared name.
func (s *Shader) Uniform(name string) string {
	if mapped, ok := s.Uniforms[name]; ok && mapped != "" {
		return mapped
	}
	return name
}
