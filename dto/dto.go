/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package dto

import (
	"encoding/xml"
	"io"
)

// ThrowableMessage is the flat wire record: class name and message only.
type ThrowableMessage struct {
	ClassName string `json:"className,omitempty" xml:"className,omitempty" yaml:"className,omitempty"`
	Message   string `json:"message,omitempty" xml:"message,omitempty" yaml:"message,omitempty"`
}

// Throwable is the full wire record of an error chain.
//
// ClassName is the error kind (or the Go type for errors without one),
// StatusCode is the custom status code when the error has one and its HTTP
// status otherwise. Cause nests the next error of the chain.
type Throwable struct {
	ClassName  string       `json:"className,omitempty" xml:"className,omitempty" yaml:"className,omitempty"`
	Message    string       `json:"message,omitempty" xml:"message,omitempty" yaml:"message,omitempty"`
	StackTrace []StackFrame `json:"stackTrace,omitempty" xml:"stackTrace>stackTraceElement,omitempty" yaml:"stackTrace,omitempty"`
	Cause      *Throwable   `json:"cause,omitempty" xml:"cause,omitempty" yaml:"cause,omitempty"`
	StatusCode int          `json:"statusCode,omitempty" xml:"statusCode,omitempty" yaml:"statusCode,omitempty"`
}

// StackFrame is one element of Throwable.StackTrace. ClassName holds the Go
// package path (plus receiver for methods), MethodName the function name.
type StackFrame struct {
	ClassName  string `json:"className,omitempty" xml:"className,omitempty" yaml:"className,omitempty"`
	MethodName string `json:"methodName,omitempty" xml:"methodName,omitempty" yaml:"methodName,omitempty"`
	FileName   string `json:"fileName,omitempty" xml:"fileName,omitempty" yaml:"fileName,omitempty"`
	LineNumber int    `json:"lineNumber,omitempty" xml:"lineNumber,omitempty" yaml:"lineNumber,omitempty"`
}

// XML root element names.
const (
	XMLThrowable        = "throwable"
	XMLThrowableMessage = "throwableMessage"
)

// ToMessage returns the flat record of t.
func (t *Throwable) ToMessage() *ThrowableMessage {
	if t == nil {
		return nil
	}
	return &ThrowableMessage{ClassName: t.ClassName, Message: t.Message}
}

// Depth returns the number of records in the cause chain, t included.
func (t *Throwable) Depth() int {
	n := 0
	for cur := t; cur != nil; cur = cur.Cause {
		n++
	}
	return n
}

// Flatten returns the chain from the outermost record to the root cause as
// flat records.
func (t *Throwable) Flatten() []ThrowableMessage {
	out := make([]ThrowableMessage, 0, t.Depth())
	for cur := t; cur != nil; cur = cur.Cause {
		out = append(out, ThrowableMessage{ClassName: cur.ClassName, Message: cur.Message})
	}
	return out
}

// EncodeXML writes t as a <throwable> document.
//
// The root name is set here instead of through an XMLName field so that the
// nested record keeps its <cause> element name.
func EncodeXML(w io.Writer, t *Throwable) error {
	enc := xml.NewEncoder(w)
	if err := enc.EncodeElement(t, xml.StartElement{Name: xml.Name{Local: XMLThrowable}}); err != nil {
		return err
	}
	return enc.Flush()
}

// DecodeXML reads a <throwable> document. The root element name is not
// checked.
func DecodeXML(r io.Reader) (*Throwable, error) {
	var t Throwable
	if err := xml.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
