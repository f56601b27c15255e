package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//InSlice returns true if given string appears in given slice
func InSlice(lookingFor string, slice []string) bool {
	for _, s := range slice {
		if s == lookingFor {
			return true
		}
	}

	return false
}

//ListDir returns a list of files/ directories in given path
func ListDir(path string) ([]string, error) {
	names := make([]string, 0)
	if entries, err := os.ReadDir(path); err != nil {
		return nil, fmt.Errorf("ListDir: Error, got '%v'", err)
	} else {
		for _, e := range entries {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

//BaseName returns file's name without directory and extension ("a/b/match.mp4" -> "match")
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

//StubPath returns the stub file path of given kind ("tracks", "camera") for a video, or "" when stubs are disabled
func StubPath(stubsDir, videoName, kind string) string {
	if stubsDir == "" {
		return ""
	}

	return filepath.Join(stubsDir, BaseName(videoName)+"_"+kind+".stub")
}
