package diff

import "fmt"

// GenerateKey yields the key pairing libraries and releases of the same location
func GenerateKey(project, variant, libtype string) string {
	return fmt.Sprintf("%s/%s:%s", project, variant, libtype)
}

// GenerateKeyDiffProjects yields the key pairing libraries and releases across two different
// project/variant roots
func GenerateKeyDiffProjects(project, variant, secondProject, secondVariant, libtype string) string {
	return fmt.Sprintf("%s/%s--%s/%s:%s", project, variant, secondProject, secondVariant, libtype)
}
