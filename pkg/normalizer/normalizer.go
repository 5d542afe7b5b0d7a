package normalizer

import "github.com/tidwall/gjson"

// Extract resolves fieldName of a result object. Objects are looked up by
// exact key, so names containing path characters are never interpreted.
func Extract(object gjson.Result, fieldName string) (string, bool) {
	return Fields(object)[fieldName].Value()
}

// Fields decodes every member of object. Non-object values yield no fields.
func Fields(object gjson.Result) map[string]Field {
	fields := map[string]Field{}
	if !object.IsObject() {
		return fields
	}

	for name, value := range object.Map() {
		fields[name] = Decode(value)
	}

	return fields
}

// Normalize extracts the given fields, leaving out the ones that resolve to nothing.
func Normalize(object gjson.Result, fieldNames ...string) map[string]string {
	fields := Fields(object)
	data := make(map[string]string, len(fieldNames))

	for _, name := range fieldNames {
		if value, ok := fields[name].Value(); ok {
			data[name] = value
		}
	}

	return data
}
