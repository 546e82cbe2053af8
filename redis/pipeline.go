package redis

type (
	// Pipeline wraps an ordered sequence of commands to be processed
	// with a single request/response exchange. This reduces bandwidth
	// and latency around communication with the remote server.
	Pipeline interface {
		// Add will attach a command to this pipeline. This command is
		// not sent to the remote server until Run is invoked.
		Add(command string, args ...interface{})

		// AddIgnore is like Add, but the command's reply is discarded
		// and contributes no slot to the result of Run. The command is
		// still executed on the remote server in submission order.
		AddIgnore(command string, args ...interface{})

		// Run will send all commands attached to this pipeline in a
		// single request and return a slice with one result per
		// non-ignored command, in submission order. A slot holds an
		// error value when the server returned an error reply for
		// that command; sibling commands are unaffected. Pipelines
		// are NOT atomic - use Transaction or a Lua script when
		// commands must not interleave with other clients.
		Run() ([]interface{}, error)
	}

	pipeline struct {
		client   *client
		commands []pipelineCommand
	}

	pipelineCommand struct {
		command string
		args    []interface{}
		ignore  bool
	}
)

func newPipeline(client *client) Pipeline {
	return &pipeline{
		client:   client,
		commands: []pipelineCommand{},
	}
}

func (p *pipeline) Add(command string, args ...interface{}) {
	p.commands = append(p.commands, pipelineCommand{
		command: command,
		args:    args,
	})
}

func (p *pipeline) AddIgnore(command string, args ...interface{}) {
	p.commands = append(p.commands, pipelineCommand{
		command: command,
		args:    args,
		ignore:  true,
	})
}

func (p *pipeline) Run() ([]interface{}, error) {
	if len(p.commands) == 0 {
		return nil, nil
	}

	return p.client.pipeline(p.commands)
}
