package core

// CopyFile copies one file's raw bytes from src to dst under the given
// write policy. Missing parent directories at the destination are created.
//
// The copy is whole-content, not streaming; this layer has no streaming
// surface. Permission flags are not carried over, matching the narrow
// permission oracle (only the write flag is modeled).
func CopyFile(src ByteIO, dst Host, from, to string, policy WritePolicy) error {
	data, err := src.ReadFile(from)
	if err != nil {
		return err
	}
	if dir := parentDir(to); dir != "" {
		if err := dst.MkdirAll(dir); err != nil {
			return err
		}
	}
	return dst.WriteFile(to, data, policy)
}

// parentDir returns the directory portion of a forward-slash path, or ""
// when there is none.
func parentDir(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			if i == 0 {
				return "/"
			}
			return name[:i]
		}
	}
	return ""
}
