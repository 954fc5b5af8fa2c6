package kafka

const PaymentEventsTopic = "payment-events"
