package dtoverlay

import "os"

// Parse extracts the description and root compatible list from overlay source text.
func Parse(src string) *Overlay {
	return &Overlay{
		Description: Description(src),
		Compatible:  CompatibleList(src),
	}
}

// ParseFile reads and parses the overlay source at path.
// The file is read fresh on every call.
func ParseFile(path string) (*Overlay, error) {
	src, err := readOverlay(path)
	if err != nil {
		return nil, err
	}
	o := Parse(src)
	o.Path = path
	return o, nil
}

// DescribeFile returns the description of the overlay source at path.
func DescribeFile(path string) (string, error) {
	src, err := readOverlay(path)
	if err != nil {
		return "", err
	}
	return Description(src), nil
}

func readOverlay(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Source: SourceOverlay, Path: path, Err: err}
	}
	return string(data), nil
}
