// Package main provides a simple HTTP benchmark tool for the classifier
package main

import (
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Service base URL")
	maxInput := flag.Int("max", 100, "Inputs cycle through 1..max")
	duration := flag.Duration("duration", 10*time.Second, "Test duration")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification")
	flag.Parse()

	if *maxInput < 1 {
		fmt.Fprintln(os.Stderr, "-max must be at least 1")
		os.Exit(2)
	}
	target := strings.TrimRight(*baseURL, "/") + "/classify/"

	fmt.Printf("Benchmarking %s{1..%d}\n", target, *maxInput)
	fmt.Printf("Duration: %v, Concurrency: %d\n\n", *duration, *concurrency)

	// Create HTTP client
	tr := &http.Transport{
		MaxIdleConns:        *concurrency * 2,
		MaxIdleConnsPerHost: *concurrency * 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if *insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	client := &http.Client{
		Transport: tr,
		Timeout:   5 * time.Second,
	}

	var (
		totalRequests int64
		totalErrors   int64
		mismatches    int64
		nextInput     int64
		totalLatency  int64 // in microseconds
		minLatency    int64 = 1<<63 - 1
		maxLatency    int64
		wg            sync.WaitGroup
		stop          = make(chan struct{})
	)

	// Start workers
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					n := int(atomic.AddInt64(&nextInput, 1)%int64(*maxInput)) + 1
					start := time.Now()
					resp, err := client.Get(target + strconv.Itoa(n))
					latency := time.Since(start).Microseconds()

					if err != nil {
						atomic.AddInt64(&totalErrors, 1)
					} else {
						var body struct {
							Value fizzbuzz.Result `json:"value"`
						}
						decodeErr := json.NewDecoder(resp.Body).Decode(&body)
						_, _ = io.Copy(io.Discard, resp.Body)
						_ = resp.Body.Close()

						// Spot-check the service against the local classifier
						if decodeErr != nil || body.Value.String() != fizzbuzz.Classify(n).String() {
							atomic.AddInt64(&mismatches, 1)
						}

						if resp.StatusCode == http.StatusOK {
							atomic.AddInt64(&totalRequests, 1)
							atomic.AddInt64(&totalLatency, latency)

							// Update min/max (approximate, not perfectly thread-safe)
							for {
								old := atomic.LoadInt64(&minLatency)
								if latency >= old || atomic.CompareAndSwapInt64(&minLatency, old, latency) {
									break
								}
							}
							for {
								old := atomic.LoadInt64(&maxLatency)
								if latency <= old || atomic.CompareAndSwapInt64(&maxLatency, old, latency) {
									break
								}
							}
						} else {
							atomic.AddInt64(&totalErrors, 1)
						}
					}
				}
			}
		}()
	}

	// Progress ticker
	ticker := time.NewTicker(time.Second)
	go func() {
		elapsed := 0
		for range ticker.C {
			elapsed++
			reqs := atomic.LoadInt64(&totalRequests)
			errs := atomic.LoadInt64(&totalErrors)
			fmt.Printf("[%ds] Requests: %d, Errors: %d, RPS: %.0f\n",
				elapsed, reqs, errs, float64(reqs)/float64(elapsed))
		}
	}()

	// Wait for duration
	time.Sleep(*duration)
	close(stop)
	ticker.Stop()
	wg.Wait()

	// Results
	reqs := atomic.LoadInt64(&totalRequests)
	errs := atomic.LoadInt64(&totalErrors)
	latencyTotal := atomic.LoadInt64(&totalLatency)
	minLat := atomic.LoadInt64(&minLatency)
	maxLat := atomic.LoadInt64(&maxLatency)

	avgLatency := float64(0)
	if reqs > 0 {
		avgLatency = float64(latencyTotal) / float64(reqs)
	}

	rps := float64(reqs) / duration.Seconds()
	rpm := rps * 60

	fmt.Println("\n========== RESULTS ==========")
	fmt.Printf("Total requests:  %d\n", reqs)
	fmt.Printf("Total errors:    %d\n", errs)
	fmt.Printf("Mismatches:      %d\n", atomic.LoadInt64(&mismatches))
	fmt.Printf("Duration:        %v\n", *duration)
	fmt.Printf("Concurrency:     %d\n", *concurrency)
	fmt.Println()
	fmt.Printf("RPS:             %.2f\n", rps)
	fmt.Printf("RPM:             %.0f\n", rpm)
	fmt.Println()
	fmt.Printf("Latency avg:     %.2f µs (%.3f ms)\n", avgLatency, avgLatency/1000)
	fmt.Printf("Latency min:     %d µs (%.3f ms)\n", minLat, float64(minLat)/1000)
	fmt.Printf("Latency max:     %d µs (%.3f ms)\n", maxLat, float64(maxLat)/1000)

	if errs > 0 || atomic.LoadInt64(&mismatches) > 0 {
		os.Exit(1)
	}
}
