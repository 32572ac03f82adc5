// Package async provides lightweight futures for running functions
// concurrently and joining their results.
//
// The package exists to support fan-out workloads where several
// independent attempts must all run to completion and every outcome must
// be observed, such as delivering one notification through multiple
// channels at once.
//
// # Usage
//
//	emailF := async.Async(ctx, addr, sendEmail)
//	smsF := async.Async(ctx, addr, sendSMS)
//
//	// Collect every outcome; a failed send never hides the others.
//	for _, res := range async.SettleAll(emailF, smsF) {
//	    if res.Err != nil {
//	        log.Println("channel failed:", res.Err)
//	    }
//	}
//
// SettleAll is the all-settle join: it waits for every future and reports
// each result-or-error individually. WaitAll also waits for every future
// but collapses the errors to the first one, which suits callers that
// only need a pass/fail signal.
package async
