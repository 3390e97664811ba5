package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/balance/pkg/scanner"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers NDJSON check requests, one response line per request.
type Server struct {
	core    *scanner.Core
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(core *scanner.Core, in io.Reader, out io.Writer) *Server {
	return &Server{
		core:    core,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run sends a ready line and then serves requests until in reaches EOF, a
// close request arrives, or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(ctx, req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(ctx, req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(ctx context.Context, req Request) bool {
	switch req.Type {
	case TypeCheck:
		s.handleCheck(req.Payload)
	case TypeCheckBatch:
		s.handleCheckBatch(ctx, req.Payload)
	case TypeClose:
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleCheck(payload json.RawMessage) {
	var p CheckPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(TypeCheck, err.Error())
		return
	}

	report, err := s.core.Scan(p.item())
	if err != nil {
		s.sendError(TypeCheck, err.Error())
		return
	}
	s.sendData(TypeCheck, report)
}

func (s *Server) handleCheckBatch(ctx context.Context, payload json.RawMessage) {
	var p CheckBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(TypeCheckBatch, err.Error())
		return
	}

	items := make([]scanner.ContentItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = item.item()
	}

	batch, err := s.core.ScanBatch(ctx, items)
	if err != nil {
		s.sendError(TypeCheckBatch, err.Error())
		return
	}
	s.sendData(TypeCheckBatch, batch)
}

func (s *Server) sendData(reqType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(reqType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    reqType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}

func (p CheckPayload) item() scanner.ContentItem {
	return scanner.ContentItem{Source: p.Source, Content: []byte(p.Content)}
}
