package http

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/crmarques/restrecord/query"
	"github.com/crmarques/restrecord/transport"
)

const formContentType = "application/x-www-form-urlencoded"

// encodeBody returns a fresh body reader for one attempt. Multipart bodies are
// streamed through a pipe so file parts are never held in memory.
func encodeBody(request *transport.Request) (io.Reader, string) {
	if !request.HasBody() {
		return nil, ""
	}
	if len(request.Files) == 0 {
		return strings.NewReader(query.Encode(request.Fields)), formContentType
	}

	reader, writer := io.Pipe()
	form := multipart.NewWriter(writer)
	go func() {
		writer.CloseWithError(writeMultipart(form, request))
	}()
	return reader, form.FormDataContentType()
}

func writeMultipart(form *multipart.Writer, request *transport.Request) error {
	for _, field := range request.Fields {
		if err := form.WriteField(field.Key, field.Value); err != nil {
			return err
		}
	}
	for _, file := range request.Files {
		if err := writeFilePart(form, file); err != nil {
			return err
		}
	}
	return form.Close()
}

func writeFilePart(form *multipart.Writer, file transport.File) error {
	source, err := file.Reader()
	if err != nil {
		return transportError("failed to open file part "+file.Field, err)
	}
	defer source.Close()

	part, err := form.CreateFormFile(file.Field, filepath.Base(file.Path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, source)
	return err
}
