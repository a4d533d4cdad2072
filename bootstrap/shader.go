package bootstrap

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/gpu"
)

// spirvWordSize is the size in bytes of one SPIR-V instruction word
const spirvWordSize = 4

func LoadShaderCode(path string) ([]byte, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, markf(err, ErrFileRead, "read shader %s", path)
	}
	return code, nil
}

func bytesToBytecode(b []byte) []uint32 {
	byteCode := make([]uint32, len(b)/spirvWordSize)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * spirvWordSize
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}

	return byteCode
}

// CreateShaderModule wraps little-endian SPIR-V bytes in a shader module.
func CreateShaderModule(device gpu.Device, code []byte) (gpu.ShaderModule, error) {
	if len(code) == 0 || len(code)%spirvWordSize != 0 {
		return nil, errors.Mark(
			errors.Newf("shader code is %d bytes, not a whole number of %d-byte words", len(code), spirvWordSize),
			ErrShaderModule)
	}

	module, err := device.CreateShaderModule(bytesToBytecode(code))
	if err != nil {
		return nil, markf(err, ErrShaderModule, "driver rejected shader code")
	}

	return module, nil
}

// loadShaderModule reads the file at path and wraps it in a shader module.
func loadShaderModule(device gpu.Device, path string) (gpu.ShaderModule, error) {
	code, err := LoadShaderCode(path)
	if err != nil {
		return nil, err
	}

	module, err := CreateShaderModule(device, code)
	if err != nil {
		return nil, errors.Wrapf(err, "shader %s", path)
	}
	return module, nil
}
