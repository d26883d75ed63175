// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	"encoding/binary"

	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// shaderCode implements driver.ShaderCode.
// The data is a SPIR-V binary.
type shaderCode struct {
	g   *GPU
	mod vk.ShaderModule
}

// spirvMagic is the first word of every SPIR-V binary.
const spirvMagic = 0x07230203

// NewShaderCode creates a new shader code object from a
// SPIR-V binary.
func (g *GPU) NewShaderCode(data []byte) (driver.ShaderCode, error) {
	if len(data) < 4 || len(data)%4 != 0 {
		return nil, driver.ErrInvalidShader
	}
	code := make([]uint32, len(data)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	if code[0] != spirvMagic {
		return nil, driver.ErrInvalidShader
	}
	info := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(data)),
		PCode:    code,
	}
	var mod vk.ShaderModule
	if res := vk.CreateShaderModule(g.dev, &info, nil, &mod); res != vk.Success {
		return nil, errFor(res)
	}
	return &shaderCode{g: g, mod: mod}, nil
}

// Destroy destroys the shader code object.
func (c *shaderCode) Destroy() {
	if c.g != nil {
		c.g.waitPending()
		vk.DestroyShaderModule(c.g.dev, c.mod, nil)
	}
	*c = shaderCode{}
}
