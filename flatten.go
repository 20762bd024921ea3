package main

import (
	"encoding/json"
	"fmt"
)

// Document is a container for a generic JSON document.
type Document map[string]interface{}

// NewDocument returns a flattened view of the input JSON document. The document is
// flattened, meaning that if the JSON document is
//
//	{ "message": { "text": "hi", "chat": { "id": 42 } } }
//
// the map will have keys "message.text", with value "hi", and
// "message.chat.id", with value 42. Arrays are kept whole under their own
// key and can be retrieved with GetArray.
func NewDocument(jsonString string) (Document, error) {
	var nested map[string]interface{}
	err := json.Unmarshal([]byte(jsonString), &nested)
	if err != nil {
		return nil, err
	}
	flattened := make(Document)
	flattened.recursivelyFlatten(nested, "")
	return flattened, nil
}

func (doc Document) recursivelyFlatten(nested map[string]interface{}, prefix string) {
	var longKey string
	for key, value := range nested {
		if prefix != "" {
			longKey = fmt.Sprintf("%s.%s", prefix, key)
		} else {
			longKey = key
		}
		if inner, ok := value.(map[string]interface{}); ok {
			doc.recursivelyFlatten(inner, longKey)
		} else {
			doc[longKey] = value
		}
	}
}

func (doc Document) GetBool(path string) (bool, bool) {
	iv, present := doc[path]
	if !present {
		return false, false
	}
	v, typeMatches := iv.(bool)
	return v, typeMatches
}

func (doc Document) GetFloat64(path string) (float64, bool) {
	iv, present := doc[path]
	if !present {
		return 0, false
	}
	v, typeMatches := iv.(float64)
	return v, typeMatches
}

func (doc Document) GetString(path string) (string, bool) {
	iv, present := doc[path]
	if !present {
		return "", false
	}
	v, present := iv.(string)
	return v, present
}

func (doc Document) GetInt64(path string) (int64, bool) {
	f, typeMatches := doc.GetFloat64(path)
	return int64(f), typeMatches
}

// GetArray returns the JSON array at path as one flattened Document per
// object element. Scalar elements are skipped. The Bot API delivers photos as
// an array of size variants, which is what this is for.
func (doc Document) GetArray(path string) ([]Document, bool) {
	iv, present := doc[path]
	if !present {
		return nil, false
	}
	elements, typeMatches := iv.([]interface{})
	if !typeMatches {
		return nil, false
	}
	docs := make([]Document, 0, len(elements))
	for _, element := range elements {
		inner, ok := element.(map[string]interface{})
		if !ok {
			continue
		}
		flattened := make(Document)
		flattened.recursivelyFlatten(inner, "")
		docs = append(docs, flattened)
	}
	return docs, true
}
