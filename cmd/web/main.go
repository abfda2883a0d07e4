package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ldksplicing/ldk-sample/pkg/analyzer"
	"github.com/ldksplicing/ldk-sample/pkg/flags"
	"github.com/ldksplicing/ldk-sample/pkg/logging"
	"github.com/ldksplicing/ldk-sample/pkg/rpcclient"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(flags.Web_Addr, ":3000")
	v.SetDefault(flags.RPC_Timeout, rpcclient.DefaultTimeout)
	v.SetDefault(flags.Log_Level, logging.LevelInfo)
	v.SetDefault(flags.Log_Format, logging.FormatJSON)

	v.SetEnvPrefix(flags.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("rpcdecode")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// PORT wins over the config file for hosted deployments.
	if port := os.Getenv("PORT"); port != "" {
		v.Set(flags.Web_Addr, ":"+port)
	}
	return v, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New("web", cfg.GetString(flags.Log_Level), cfg.GetString(flags.Log_Format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var net *chaincfg.Params
	if chain := cfg.GetString(flags.Chain); chain != "" {
		if net, err = analyzer.NetworkParams(chain); err != nil {
			log.Error("invalid chain", "chain", chain, "err", err)
			os.Exit(1)
		}
	}

	// Without an RPC endpoint only the decode routes are served.
	var n node
	if url := cfg.GetString(flags.RPC_URL); url != "" {
		n = rpcclient.New(rpcclient.Config{
			URL:      url,
			User:     cfg.GetString(flags.RPC_User),
			Password: cfg.GetString(flags.RPC_Password),
			Timeout:  cfg.GetDuration(flags.RPC_Timeout),
			Network:  net,
		}, log)
	}

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(n, net, log)

	addr := cfg.GetString(flags.Web_Addr)
	log.Info("listening", "addr", addr, "node", n != nil)
	if err := r.Run(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>rpcdecode</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #f7931a; }
        textarea { width: 100%; height: 200px; font-family: monospace; }
        button { background: #f7931a; color: white; padding: 10px 20px; border: none; cursor: pointer; }
        pre { background: #f5f5f5; padding: 15px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>rpcdecode</h1>
    <p>Paste the result of a bitcoind RPC call:</p>
    <select id="method"></select>
    <br><br>
    <textarea id="input" placeholder='{"feerate": 0.00012, "blocks": 6}'></textarea>
    <br><br>
    <button onclick="decode()">Decode</button>
    <h2>Result:</h2>
    <pre id="output">Results will appear here...</pre>

    <script>
        fetch('/api/health').then(r => r.json()).then(h => {
            const select = document.getElementById('method');
            for (const m of h.methods) {
                const opt = document.createElement('option');
                opt.value = opt.textContent = m;
                select.appendChild(opt);
            }
        });

        async function decode() {
            const method = document.getElementById('method').value;
            const input = document.getElementById('input').value;
            const output = document.getElementById('output');

            try {
                const response = await fetch('/api/decode/' + method, {
                    method: 'POST',
                    headers: {'Content-Type': 'application/json'},
                    body: input
                });
                const result = await response.json();
                output.textContent = JSON.stringify(result, null, 2);
            } catch (err) {
                output.textContent = 'Error: ' + err.message;
            }
        }
    </script>
</body>
</html>`
