package vobiz

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"
)

// Control documents returned to Vobiz. Built with encoding/xml structs; no
// provider SDK dependency. The schema is the Plivo-compatible verb set the
// provider executes: Speak, Record, Stream, Dial.

type responseDoc struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []any    `xml:",any"`
}

type speakVerb struct {
	XMLName xml.Name `xml:"Speak"`
	Text    string   `xml:",chardata"`
}

type recordVerb struct {
	XMLName        xml.Name `xml:"Record"`
	Action         string   `xml:"action,attr,omitempty"`
	CallbackURL    string   `xml:"callbackUrl,attr,omitempty"`
	CallbackMethod string   `xml:"callbackMethod,attr,omitempty"`
	RecordSession  bool     `xml:"recordSession,attr"`
	Redirect       bool     `xml:"redirect,attr"`
}

type streamVerb struct {
	XMLName       xml.Name `xml:"Stream"`
	Bidirectional bool     `xml:"bidirectional,attr"`
	KeepCallAlive bool     `xml:"keepCallAlive,attr"`
	ContentType   string   `xml:"contentType,attr"`
	URL           string   `xml:",chardata"`
}

type dialVerb struct {
	XMLName xml.Name `xml:"Dial"`
	Number  string   `xml:"Number"`
}

// StreamDocumentParams configures the stream-and-record document.
type StreamDocumentParams struct {
	Greeting             string
	StreamURL            string
	RecordingFinishedURL string
	RecordingReadyURL    string
	BodyData             map[string]any
}

// StreamDocument instructs the provider to record the session and open a
// bidirectional media stream to the conversational pipeline. Body data, when
// present, rides on the stream URL base64-encoded.
func StreamDocument(p StreamDocumentParams) (string, error) {
	streamURL := p.StreamURL
	if len(p.BodyData) > 0 {
		raw, err := json.Marshal(p.BodyData)
		if err != nil {
			return "", fmt.Errorf("marshal stream body data: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(raw)
		streamURL = fmt.Sprintf("%s?body=%s", streamURL, url.QueryEscape(encoded))
	}

	doc := responseDoc{}
	if p.RecordingFinishedURL != "" {
		doc.Verbs = append(doc.Verbs, recordVerb{
			Action:         p.RecordingFinishedURL,
			CallbackURL:    p.RecordingReadyURL,
			CallbackMethod: "POST",
			RecordSession:  true,
			Redirect:       false,
		})
	}
	if p.Greeting != "" {
		doc.Verbs = append(doc.Verbs, speakVerb{Text: p.Greeting})
	}
	doc.Verbs = append(doc.Verbs, streamVerb{
		Bidirectional: true,
		KeepCallAlive: true,
		ContentType:   "audio/x-mulaw;rate=8000",
		URL:           streamURL,
	})

	return render(doc)
}

// TransferDocument instructs the provider to speak the hold announcement and
// dial the human agent.
func TransferDocument(announcement, target string) (string, error) {
	doc := responseDoc{}
	if announcement != "" {
		doc.Verbs = append(doc.Verbs, speakVerb{Text: announcement})
	}
	doc.Verbs = append(doc.Verbs, dialVerb{Number: target})
	return render(doc)
}

// EmptyDocument is the neutral acknowledgment for callbacks that require no
// further instruction.
func EmptyDocument() string {
	return xml.Header + "<Response></Response>"
}

func render(doc responseDoc) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
