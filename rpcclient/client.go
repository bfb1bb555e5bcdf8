package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lnswapd/swapd/pkg/swapd"
)

// RequestPropose are the params of the proposeSwap method.
type RequestPropose struct {
	WantedAsset string `json:"wantedAsset"`
	AmountBNB   string `json:"amountBNB"`
	AmountSats  string `json:"amountSats"`
}

// RequestDTag are the params of every method addressing a single swap.
type RequestDTag struct {
	DTag string `json:"dTag"`
}

type Client interface {
	ListIntentions() (json.RawMessage, error)
	ProposeSwap(data RequestPropose) (json.RawMessage, error)
	AcceptSwap(data RequestDTag) (json.RawMessage, error)
	PublishInvoice(data RequestDTag) (json.RawMessage, error)
	LockFunds(data RequestDTag) (json.RawMessage, error)
	ClaimFunds(data RequestDTag) (json.RawMessage, error)
	RefundFunds(data RequestDTag) (json.RawMessage, error)
	SwapStatus(data RequestDTag) (json.RawMessage, error)
}

type client struct {
	user      string
	pass      string
	protocol  string
	rpcServer string
}

func NewClient(username, password, protocol, rpcServer string) Client {
	return &client{
		user:      username,
		pass:      password,
		protocol:  protocol,
		rpcServer: rpcServer,
	}
}

// sendPostRequest sends the marshalled JSON-RPC command using HTTP-POST mode
// and returns either the result field or the error field of the response.
func (c *client) sendPostRequest(method string, params interface{}) (json.RawMessage, error) {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	payload := swapd.Request{
		Version: "2.0",
		ID:      1,
		Method:  method,
		Params:  rawParams,
	}
	marshalledJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := c.protocol + "://" + c.rpcServer
	httpRequest, err := http.NewRequest("POST", url, bytes.NewReader(marshalledJSON))
	if err != nil {
		return nil, err
	}
	httpRequest.Close = true
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.SetBasicAuth(c.user, c.pass)

	httpResponse, err := http.DefaultClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	respBytes, err := io.ReadAll(httpResponse.Body)
	httpResponse.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("error reading json reply: %v", err)
	}

	var resp swapd.Response
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
			return nil, fmt.Errorf("%d %s", httpResponse.StatusCode,
				http.StatusText(httpResponse.StatusCode))
		}
		return nil, err
	}
	if resp.Error != nil {
		if resp.Error.Data != "" {
			return nil, fmt.Errorf("%s: %s", resp.Error.Message, resp.Error.Data)
		}
		return nil, fmt.Errorf("%s", resp.Error.Message)
	}
	return resp.Result, nil
}

func (c *client) ListIntentions() (json.RawMessage, error) {
	return c.sendPostRequest("listIntentions", struct{}{})
}

func (c *client) ProposeSwap(data RequestPropose) (json.RawMessage, error) {
	return c.sendPostRequest("proposeSwap", data)
}

func (c *client) AcceptSwap(data RequestDTag) (json.RawMessage, error) {
	return c.sendPostRequest("acceptSwap", data)
}

func (c *client) PublishInvoice(data RequestDTag) (json.RawMessage, error) {
	return c.sendPostRequest("publishInvoice", data)
}

func (c *client) LockFunds(data RequestDTag) (json.RawMessage, error) {
	return c.sendPostRequest("lockFunds", data)
}

func (c *client) ClaimFunds(data RequestDTag) (json.RawMessage, error) {
	return c.sendPostRequest("claimFunds", data)
}

func (c *client) RefundFunds(data RequestDTag) (json.RawMessage, error) {
	return c.sendPostRequest("refundFunds", data)
}

func (c *client) SwapStatus(data RequestDTag) (json.RawMessage, error) {
	return c.sendPostRequest("swapStatus", data)
}
