package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Material is one newmtl block, reduced to the texture maps the renderer
// binds. Map fields hold file names as written.
type Material struct {
	Name            string
	DiffuseMap      string // map_Kd
	NormalMap       string // map_Bump, bump, norm
	DisplacementMap string // disp
}

// Arguments taken by texture map options. The vector options (-o, -s, -t)
// take one to three numbers.
var mapOptionArgs = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-mm":      2,
	"-o":       3,
	"-s":       3,
	"-t":       3,
	"-texres":  1,
	"-type":    1,
}

var errNoMapFile = errors.New("missing file name")

// ParseMTL decodes an MTL material library, keyed by material name.
func ParseMTL(data []byte) (map[string]*Material, error) {
	materials, err := scanMaps(data)
	if err != nil {
		return nil, err
	}

	dec, err := decode("mtl", bytes.NewReader(nil), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	for name, m := range dec.Materials {
		mat := materials[name]
		if mat == nil {
			mat = &Material{Name: name}
			materials[name] = mat
		}
		if mat.DiffuseMap == "" {
			mat.DiffuseMap = m.MapKd
		}
	}
	return materials, nil
}

// scanMaps collects the texture map statements of every material. The g3n
// decoder reads map_Kd only and keeps a single field of it, so file names
// with spaces and the bump and displacement maps are picked up here.
func scanMaps(data []byte) (map[string]*Material, error) {
	materials := make(map[string]*Material)
	var cur *Material

	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		fail := func(msg string, err error) error {
			return &ParseError{Kind: "mtl", Line: line, Msg: msg, Err: err}
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fail("newmtl without a name", nil)
			}
			cur = materials[fields[1]]
			if cur == nil {
				cur = &Material{Name: fields[1]}
				materials[cur.Name] = cur
			}
			continue
		}
		if cur == nil {
			return nil, fail(fmt.Sprintf("%q before newmtl", fields[0]), nil)
		}

		var dst *string
		switch strings.ToLower(fields[0]) {
		case "map_kd":
			dst = &cur.DiffuseMap
		case "map_bump", "bump", "norm":
			dst = &cur.NormalMap
		case "disp":
			dst = &cur.DisplacementMap
		default:
			continue
		}
		name, err := mapFile(fields[1:])
		if err != nil {
			return nil, fail("bad "+fields[0], err)
		}
		*dst = name
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Kind: "mtl", Msg: "reading failed", Err: err}
	}
	return materials, nil
}

// mapFile returns the file name of a texture map statement given the fields
// after the keyword. Options are skipped and the remaining fields joined, so
// "-bm 0.5 my rock.png" names "my rock.png".
func mapFile(args []string) (string, error) {
	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") {
		option := args[i]
		n, ok := mapOptionArgs[option]
		if !ok {
			return "", fmt.Errorf("unknown option %s", option)
		}
		i++
		vector := n == 3
		for ; n > 0 && i < len(args); n-- {
			if vector && !isNumber(args[i]) {
				break
			}
			i++
		}
	}
	if i >= len(args) {
		return "", errNoMapFile
	}
	return strings.Join(args[i:], " "), nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 32)
	return err == nil
}
