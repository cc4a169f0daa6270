package state

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// mergeOverSkeleton aplica el documento guardado sobre el esqueleto por defecto.
// Los objetos se combinan en profundidad (se rellenan claves anidadas faltantes);
// arreglos y escalares guardados reemplazan al valor por defecto; un null guardado
// sobre un objeto por defecto se ignora.
func mergeOverSkeleton(skeleton, saved []byte) ([]byte, error) {
	base, err := decodeObject(skeleton)
	if err != nil {
		return nil, fmt.Errorf("esqueleto: %w", err)
	}
	overlay, err := decodeObject(saved)
	if err != nil {
		return nil, err
	}
	return json.Marshal(deepMerge(base, overlay))
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("el documento no es un objeto")
	}
	return out, nil
}

func deepMerge(base, overlay map[string]any) map[string]any {
	for k, ov := range overlay {
		bv, exists := base[k]
		bm, baseIsObj := bv.(map[string]any)
		if !exists || !baseIsObj {
			base[k] = ov
			continue
		}
		switch o := ov.(type) {
		case map[string]any:
			base[k] = deepMerge(bm, o)
		case nil:
			// se conserva el objeto por defecto
		default:
			base[k] = ov
		}
	}
	return base
}
