package domain

import (
	"fmt"
	"strings"
)

// MergePolicy define como um post recebido é conciliado com o registro armazenado
type MergePolicy string

const (
	// MergePolicyMax mantém o maior valor de cada contador
	MergePolicyMax MergePolicy = "max"
	// MergePolicyReplace sobrescreve o registro armazenado com o recebido
	MergePolicyReplace MergePolicy = "replace"
)

// ParseMergePolicy converte o valor de configuração em MergePolicy.
// "new" é aceito como sinônimo legado de replace.
func ParseMergePolicy(value string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(MergePolicyMax):
		return MergePolicyMax, nil
	case string(MergePolicyReplace), "new":
		return MergePolicyReplace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMergePolicy, value)
	}
}
