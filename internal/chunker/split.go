package chunker

// PartCount returns ceil(total/size)
func PartCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Split cuts keys into chunks of at most size keys. Part p (1-based) holds
// keys[(p-1)*size : min(p*size, len(keys))], each mapped to "". An empty
// key list yields no chunks.
func Split(keys []string, size int) ([]*Chunk, error) {
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}

	total := len(keys)
	parts := PartCount(total, size)
	chunks := make([]*Chunk, 0, parts)

	for part := 1; part <= parts; part++ {
		start := (part - 1) * size
		end := min(start+size, total)

		chunk := NewChunk()
		for _, key := range keys[start:end] {
			chunk.Set(key, "")
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}
