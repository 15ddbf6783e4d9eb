// Package tensorsrc implements the generic safetensors shard reader
// spec.md §6.1 describes as the "Tensor source" external collaborator:
// no architecture-specific tensor-name knowledge lives here, only the
// wire contract and dtype widening.
package tensorsrc
