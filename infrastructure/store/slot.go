// Package store contém o slot local persistente onde fica a lista serializada de produtos
package store

import "context"

// Slot é uma única entrada nomeada de um armazenamento chave-valor persistente
type Slot interface {
	// Read retorna o conteúdo atual ou nil quando o slot nunca foi escrito
	Read(ctx context.Context) ([]byte, error)
	// Write sobrescreve o conteúdo do slot
	Write(ctx context.Context, data []byte) error
	Close() error
}
