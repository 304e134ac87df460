package generator

// SplitChunks splits text into consecutive chunks of at most maxChars
// characters (runes, so multi-byte text never splits mid-character).
// The concatenation of the chunks equals the input; no empty chunk is
// produced, and the trailing chunk may be shorter than maxChars.
func SplitChunks(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	if maxChars <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+maxChars-1)/maxChars)
	for i := 0; i < len(runes); i += maxChars {
		end := i + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
