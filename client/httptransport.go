package client

import (
	"context"
	"io"
	"net/http"

	"github.com/foomo/sitemapserver/responses"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type httpTransport struct {
	client   *http.Client
	endpoint string
}

func (ht *httpTransport) call(ctx context.Context, method, route string, response interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, ht.endpoint+"/"+route, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	httpResponse, err := ht.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call "+route)
	}
	defer httpResponse.Body.Close()

	responseBytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if httpResponse.StatusCode != http.StatusOK {
		replyErr := &ReplyError{StatusCode: httpResponse.StatusCode}
		errReply := struct {
			Reply *responses.Error `json:"reply"`
		}{}
		if json.Unmarshal(responseBytes, &errReply) == nil {
			replyErr.Reply = errReply.Reply
		}
		return replyErr
	}

	reply := struct {
		Reply jsoniter.RawMessage `json:"reply"`
	}{}
	if err := json.Unmarshal(responseBytes, &reply); err != nil {
		return errors.Wrap(err, "failed to decode reply")
	}
	if err := json.Unmarshal(reply.Reply, response); err != nil {
		return errors.Wrap(err, "failed to decode "+route)
	}
	return nil
}
